package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

func TestFormConfigService_SaveReplacesList(t *testing.T) {
	ctx := context.Background()
	service := NewFormConfigService(memory.NewFormConfigRepository(memory.NewStore(&id.Sequence{Prefix: "fc"})), logging.NewNop())
	service.now = func() time.Time { return fixedNow }

	_, found, err := service.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	first, err := service.Save(ctx, []formconfig.Field{
		{Name: " discord ", Label: "Discord", Required: true},
		{Name: "region", Label: "Region", Type: "select", Options: []string{"Asia", "Europe"}},
	})
	require.NoError(t, err)
	require.Len(t, first.Fields, 2)
	assert.Equal(t, "discord", first.Fields[0].Name)
	assert.Equal(t, formconfig.TypeText, first.Fields[0].Type)
	assert.Equal(t, fixedNow, first.UpdatedAt)

	second, err := service.Save(ctx, []formconfig.Field{{Name: "discord", Label: "Discord"}})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "singleton row keeps its id")

	got, found, err := service.Get(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got.Fields, 1)
}

func TestFormConfigService_SaveRejectsInvalidFields(t *testing.T) {
	ctx := context.Background()
	service := NewFormConfigService(memory.NewFormConfigRepository(memory.NewStore(nil)), logging.NewNop())

	_, err := service.Save(ctx, []formconfig.Field{{Name: "teamName", Label: "Team"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, formconfig.ErrInvalidField)

	_, err = service.Save(ctx, []formconfig.Field{{Name: "notes", Label: strings.Repeat("n", formconfig.MaxEncodedLength)}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, formconfig.ErrTooLarge)

	_, found, err := service.Get(ctx)
	require.NoError(t, err)
	assert.False(t, found, "rejected saves leave nothing behind")
}
