package kernel_test

import (
	"encoding/json"
	"testing"

	"intimacoes/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalUUID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	t.Run("should accept supported text forms", func(t *testing.T) {
		for _, input := range []string{
			canonicalUUID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, canonicalUUID, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "zzze8400-e29b-41d4-a716-446655440000"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through Bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
	})

	t.Run("should reject short input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject nil bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
}

func TestUUID_BytesDoesNotLeakState(t *testing.T) {
	original := kernel.NewUUID()
	text := original.String()

	raw := original.Bytes()
	for i := range raw {
		raw[i] = 0xFF
	}

	assert.Equal(t, text, original.String())
	assert.NotEqual(t, text, uuid.UUID(raw).String())
}

func TestUUID_JSON(t *testing.T) {
	type record struct {
		ID kernel.UUID `json:"id"`
	}

	t.Run("should marshal as canonical string", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonicalUUID)
		require.NoError(t, err)

		data, err := json.Marshal(record{ID: id})

		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"550e8400-e29b-41d4-a716-446655440000"}`, string(data))
	})

	t.Run("should unmarshal from string", func(t *testing.T) {
		var r record

		require.NoError(t, json.Unmarshal([]byte(`{"id":"550e8400-e29b-41d4-a716-446655440000"}`), &r))
		assert.Equal(t, canonicalUUID, r.ID.String())
	})

	t.Run("should fail on malformed identifiers", func(t *testing.T) {
		var r record

		require.Error(t, json.Unmarshal([]byte(`{"id":"nope"}`), &r))
	})
}
