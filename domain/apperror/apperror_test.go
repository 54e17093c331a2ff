package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind Kind
	}{
		{"CreatorNotFound", CreatorNotFound("c1"), KindNotFound},
		{"AdminNotFound", AdminNotFound("a@x.com"), KindNotFound},
		{"SubjectNotFound", SubjectNotFound("u1"), KindNotFound},
		{"EmailAlreadyExists", EmailAlreadyExists("a@x.com"), KindConflict},
		{"WrongPassword", WrongPassword("a@x.com"), KindUnauthorized},
		{"TokenInvalid", TokenInvalid(), KindUnauthorized},
		{"InvalidRole", InvalidRole("admin"), KindBadRequest},
		{"Unavailable", Unavailable("authorization", nil), KindUnavailable},
		{"PlainError", errors.New("boom"), KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.kind {
				t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.kind)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{AdminNotFound("a@x.com"), http.StatusNotFound},
		{EmailAlreadyExists("a@x.com"), http.StatusBadRequest},
		{WrongPassword("a@x.com"), http.StatusUnauthorized},
		{InvalidRole("admin"), http.StatusBadRequest},
		{Unavailable("authorization", nil), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestErrorMatching(t *testing.T) {
	t.Run("SameConditionMatches", func(t *testing.T) {
		if !errors.Is(CreatorNotFound("c1"), CreatorNotFound("c1")) {
			t.Error("Same condition should match")
		}
	})

	t.Run("DifferentSubjectDoesNotMatch", func(t *testing.T) {
		if errors.Is(CreatorNotFound("c1"), CreatorNotFound("c2")) {
			t.Error("Different subjects should not match")
		}
	})

	t.Run("WrappedErrorStillMatches", func(t *testing.T) {
		wrapped := fmt.Errorf("handling request: %w", TokenInvalid())
		if !errors.Is(wrapped, TokenInvalid()) {
			t.Error("Wrapped error should still match")
		}
	})

	t.Run("MessageNeverExposesCause", func(t *testing.T) {
		err := Unavailable("authorization", errors.New("dial tcp: secret-host refused"))
		if MessageOf(err) != "Service 'authorization' unavailable." {
			t.Errorf("unexpected client message: %s", MessageOf(err))
		}
	})
}
