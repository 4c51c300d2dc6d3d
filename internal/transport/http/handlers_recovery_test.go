package httptransport

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"storegate/internal/jwt"
	"storegate/internal/recovery/models"
	"storegate/internal/recovery/service"
	"storegate/internal/transport/http/mocks"
	dErrors "storegate/pkg/domainerrors"
	"storegate/pkg/testutil"
)

//go:generate mockgen -source=handlers_recovery.go -destination=mocks/recovery_mocks.go -package=mocks RecoveryService

func newRecoveryRouter(t *testing.T) (*mocks.MockRecoveryService, http.Handler) {
	t.Helper()
	ctrl := gomock.NewController(t)
	recovery := mocks.NewMockRecoveryService(ctrl)
	admin := mocks.NewMockRoleSyncService(ctrl)
	tokens := jwt.NewService("test-key", "storegate", "storegate-admin")
	router := NewRouter(NewRecoveryHandler(recovery), NewAdminHandler(admin), tokens, slog.Default())
	return recovery, router
}

func TestHandleRequest(t *testing.T) {
	t.Run("known and unknown identifiers get the same 200", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			RequestReset(gomock.Any(), "user@example.com", gomock.Any()).
			Return(service.Ack{Message: "If an account exists for that identifier, a reset code has been sent."}, nil)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/request",
			requestResetRequest{Identifier: "user@example.com"}))

		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.UnmarshalResponse[requestResetResponse](t, rr)
		assert.True(t, got.OK)
		assert.NotEmpty(t, got.Message)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().RequestReset(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/v1/recovery/request", "{bad-json"))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	t.Run("invalid identifier is a 400", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			RequestReset(gomock.Any(), "not an identifier", gomock.Any()).
			Return(service.Ack{}, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier"))

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/request",
			requestResetRequest{Identifier: "not an identifier"}))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}

func TestHandleVerify(t *testing.T) {
	t.Run("matching code returns the reset token", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			VerifyCode(gomock.Any(), "user@example.com", "123456", gomock.Any()).
			Return(models.ResetToken{Token: "tok-abc"}, nil)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/verify",
			verifyCodeRequest{Identifier: "user@example.com", Code: "123456"}))

		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.UnmarshalResponse[verifyCodeResponse](t, rr)
		assert.True(t, got.OK)
		assert.Equal(t, "tok-abc", got.ResetToken)
	})

	t.Run("wrong code is a 400 with the mismatch code", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			VerifyCode(gomock.Any(), "user@example.com", "000000", gomock.Any()).
			Return(models.ResetToken{}, dErrors.New(dErrors.CodeMismatch, "code mismatch"))

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/verify",
			verifyCodeRequest{Identifier: "user@example.com", Code: "000000"}))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeMismatch))
	})

	t.Run("exhausted attempts are a 400 not a 404", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			VerifyCode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.ResetToken{}, dErrors.New(dErrors.CodeTooManyAttempts, "attempt limit reached"))

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/verify",
			verifyCodeRequest{Identifier: "user@example.com", Code: "111111"}))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeTooManyAttempts))
	})
}

func TestHandleComplete(t *testing.T) {
	t.Run("clean completion", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			CompleteReset(gomock.Any(), "user@example.com", "tok-abc", "Str0ngPassword", gomock.Any()).
			Return(service.Result{Ok: true}, nil)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/complete",
			completeResetRequest{Identifier: "user@example.com", ResetToken: "tok-abc", NewPassword: "Str0ngPassword"}))

		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.UnmarshalResponse[completeResetResponse](t, rr)
		assert.True(t, got.OK)
		assert.Empty(t, got.Warnings)
	})

	t.Run("degraded sync still returns 200 with warnings", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			CompleteReset(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(service.Result{Ok: true, Warnings: []string{"secondary sync failed"}}, nil)

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/complete",
			completeResetRequest{Identifier: "user@example.com", ResetToken: "tok-abc", NewPassword: "Str0ngPassword"}))

		testutil.AssertStatus(t, rr, http.StatusOK)
		got := testutil.UnmarshalResponse[completeResetResponse](t, rr)
		assert.True(t, got.OK)
		assert.Equal(t, []string{"secondary sync failed"}, got.Warnings)
	})

	t.Run("weak password is a 400", func(t *testing.T) {
		recovery, router := newRecoveryRouter(t)
		recovery.EXPECT().
			CompleteReset(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(service.Result{}, dErrors.New(dErrors.CodeWeakPassword, "password too weak"))

		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/recovery/complete",
			completeResetRequest{Identifier: "user@example.com", ResetToken: "tok-abc", NewPassword: "short"}))

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeWeakPassword))
	})
}
