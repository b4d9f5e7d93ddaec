package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/villagebank/village-bank-service/internal/repository"
	"github.com/villagebank/village-bank-service/internal/service"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing cycle", fmt.Errorf("cycle %w", repository.ErrNotFound), http.StatusNotFound},
		{"missing loan", fmt.Errorf("loan %w", repository.ErrNotFound), http.StatusNotFound},
		{"missing member", fmt.Errorf("member %w", repository.ErrNotFound), http.StatusNotFound},
		{"locked cycle", service.ErrCycleLocked, http.StatusUnprocessableEntity},
		{"unpaid membership", service.ErrMembershipUnpaid, http.StatusUnprocessableEntity},
		{"over limit", fmt.Errorf("%w: max 3000.00", service.ErrOverLimit), http.StatusUnprocessableEntity},
		{"bad amount", service.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{"anything else", fmt.Errorf("unknown payment type: GIFT"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
