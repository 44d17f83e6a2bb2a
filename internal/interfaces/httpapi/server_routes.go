package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /registration-config", handler.GetRegistrationConfig)
	mux.HandleFunc("GET /registration/check", handler.CheckRegistration)
	mux.HandleFunc("POST /form", handler.SubmitForm)
	mux.HandleFunc("GET /teams", handler.ListTeams)
	mux.HandleFunc("GET /schedules", handler.ListSchedules)
	mux.HandleFunc("GET /form-config", handler.GetFormConfig)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /form", RequireAuth(http.HandlerFunc(handler.GetOwnForm)))
	mux.Handle("POST /me/claim-guest", RequireAuth(http.HandlerFunc(handler.ClaimGuestForm)))
	mux.Handle("GET /room-credentials", RequireAuth(http.HandlerFunc(handler.GetRoomCredentials)))
	mux.Handle("POST /contact", RequireAuth(http.HandlerFunc(handler.SubmitContact)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("PATCH /registration-config", RequireAdmin(http.HandlerFunc(handler.UpdateRegistrationConfig)))
	mux.Handle("GET /admin/registration-status", RequireAdmin(http.HandlerFunc(handler.GetRegistrationDashboard)))

	mux.Handle("GET /admin/forms", RequireAdmin(http.HandlerFunc(handler.ListAdminForms)))
	mux.Handle("PATCH /admin/forms/{id}", RequireAdmin(http.HandlerFunc(handler.UpdateAdminForm)))
	mux.Handle("DELETE /admin/forms/{id}", RequireAdmin(http.HandlerFunc(handler.DeleteAdminForm)))
	mux.Handle("PATCH /admin/forms/{id}/toggle", RequireAdmin(http.HandlerFunc(handler.ToggleAdminForm)))

	mux.Handle("POST /admin/schedules", RequireAdmin(http.HandlerFunc(handler.CreateSchedule)))
	mux.Handle("PATCH /admin/schedules/{id}", RequireAdmin(http.HandlerFunc(handler.UpdateSchedule)))
	mux.Handle("DELETE /admin/schedules/{id}", RequireAdmin(http.HandlerFunc(handler.DeleteSchedule)))

	mux.Handle("GET /admin/rooms", RequireAdmin(http.HandlerFunc(handler.ListRooms)))
	mux.Handle("POST /admin/rooms", RequireAdmin(http.HandlerFunc(handler.CreateRoom)))
	mux.Handle("PATCH /admin/rooms/{id}", RequireAdmin(http.HandlerFunc(handler.UpdateRoom)))

	mux.Handle("GET /admin/contact-forms", RequireAdmin(http.HandlerFunc(handler.ListContactForms)))
	mux.Handle("DELETE /admin/contact-forms/{id}", RequireAdmin(http.HandlerFunc(handler.DeleteContactForm)))

	mux.Handle("GET /admin/form-config", RequireAdmin(http.HandlerFunc(handler.GetFormConfig)))
	mux.Handle("POST /admin/form-config", RequireAdmin(http.HandlerFunc(handler.SaveFormConfig)))
}
