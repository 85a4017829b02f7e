package serverutils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type chatPayload struct {
	Message   string `validate:"required"`
	SessionId string `validate:"omitempty,uuid4"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(chatPayload{Message: "What is Lisa Chen's ambition score?"})
	assert.NoError(t, err)
}

func TestValidateRequestMissingField(t *testing.T) {
	err := ValidateRequest(chatPayload{})
	assert.Error(t, err)

	var fiberErr *fiber.Error
	assert.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "Message")
}

func TestValidateRequestBadFormat(t *testing.T) {
	err := ValidateRequest(chatPayload{Message: "hi", SessionId: "not-a-uuid"})
	assert.Error(t, err)

	var fiberErr *fiber.Error
	assert.True(t, errors.As(err, &fiberErr))
	assert.Contains(t, fiberErr.Message, "SessionId")
}

func TestSuccessResponse(t *testing.T) {
	res := SuccessResponse("Success get employees", fiber.Map{"count": 3})
	assert.True(t, res.Success)
	assert.Equal(t, "Success get employees", res.Message)
	assert.NotNil(t, res.Data)
}
