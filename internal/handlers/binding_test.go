package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	paid := time.Date(2026, 10, 12, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		body        string
		expected    *time.Time
		expectError bool
	}{
		{
			name:     "Nested Structure",
			body:     `{"payment": {"payment_date": "2026-10-12T15:00:00Z"}}`,
			expected: &paid,
		},
		{
			name:     "Flat Structure",
			body:     `{"payment_date": "2026-10-12T15:00:00Z"}`,
			expected: &paid,
		},
		{
			name:     "Missing Key Fallback",
			body:     `{"other": "value", "payment_date": "2026-10-12T15:00:00Z"}`,
			expected: &paid,
		},
		{
			name: "Empty Body",
			body: "",
		},
		{
			name:        "Invalid Date",
			body:        `{"payment_date": "yesterday"}`,
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			body:        `{"payment": "some string"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/payments/1/confirm", bytes.NewBufferString(tt.body))

			var req ConfirmPaymentRequest
			err := BindNestedOrFlat(c, "payment", &req)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, req.PaymentDate)
		})
	}
}
