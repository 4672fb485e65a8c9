package courierrepo

import (
	"testing"

	"intimacoes/internal/core/domain/model/courier"
	"intimacoes/internal/core/domain/model/kernel"
	"intimacoes/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourierDTO_Mapping(t *testing.T) {
	profile := courier.Profile{
		Document:       "123.456.789-00",
		Address:        "Rua A, 1",
		Phone:          "11 1111-1111",
		SecondaryPhone: "11 2222-2222",
		PaymentKey:     "chave",
		PreferredRoute: "Zona Leste",
	}
	c, err := courier.NewCourier(kernel.NewUUID(), "Maria", profile)
	require.NoError(t, err)

	dto := fromDomain(c)
	assert.Equal(t, c.ID().Bytes(), dto.ID)
	assert.Equal(t, "Zona Leste", dto.PreferredRoute)

	restored, err := toDomain(dto)
	require.NoError(t, err)
	assert.True(t, restored.IsEqual(c))
	assert.Equal(t, "Maria", restored.Name())
	assert.Equal(t, profile, restored.Profile())
}

func TestCourierDTO_ToDomainRejectsBlankName(t *testing.T) {
	_, err := toDomain(CourierDTO{ID: uuid.New(), Name: " "})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCourierDTO_TableName(t *testing.T) {
	assert.Equal(t, "couriers", CourierDTO{}.TableName())
}
