package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/party-onboarding/internal/application/account"
	"go.uber.org/zap"
)

type AccountHandler struct {
	requestOTP    app.RequestOTP
	verifyOTP     app.VerifyOTP
	initiateReset app.InitiatePasswordReset
	resetPassword app.ResetPassword
	logger        *zap.Logger
}

type phoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type resetPasswordRequest struct {
	Phone       string `json:"phone" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type requestOTPResponse struct {
	Message string `json:"message"`
	app.RequestOTPOutput
}

type verifyOTPResponse struct {
	Message string `json:"message"`
	app.VerifyOTPOutput
}

type initiateResetResponse struct {
	Message string `json:"message"`
	app.InitiatePasswordResetOutput
}

var otpCheckErrors = []errorMapping{
	{app.ErrInvalidPhone, http.StatusBadRequest, "invalid_phone", app.ErrInvalidPhone.Error()},
	{app.ErrInvalidOTPFormat, http.StatusBadRequest, "invalid_otp_format", "OTP must be 6 digits"},
	{app.ErrOTPNotFound, http.StatusNotFound, "otp_not_found", "No OTP found for this phone number. Please request a new one"},
	{app.ErrOTPExpired, http.StatusGone, "otp_expired", "OTP has expired. Please request a new one"},
	{app.ErrOTPAttemptsExceeded, http.StatusTooManyRequests, "otp_attempts_exceeded", "Maximum verification attempts exceeded. Please request a new OTP"},
	{app.ErrOTPMismatch, http.StatusUnauthorized, "invalid_otp", "Invalid OTP"},
}

func NewAccountHandler(
	requestOTP app.RequestOTP,
	verifyOTP app.VerifyOTP,
	initiateReset app.InitiatePasswordReset,
	resetPassword app.ResetPassword,
	logger *zap.Logger,
) *AccountHandler {
	return &AccountHandler{
		requestOTP:    requestOTP,
		verifyOTP:     verifyOTP,
		initiateReset: initiateReset,
		resetPassword: resetPassword,
		logger:        orNop(logger),
	}
}

func (h *AccountHandler) RequestOTP(c echo.Context) error {
	var req phoneRequest
	if ok, err := bindAndValidate(c, &req, app.ErrInvalidPhone.Error()); !ok {
		return err
	}

	out, err := h.requestOTP.Execute(c.Request().Context(), app.RequestOTPInput{Phone: req.Phone})
	if err != nil {
		return respondError(c, h.logger, err, []errorMapping{
			{app.ErrInvalidPhone, http.StatusBadRequest, "invalid_phone", app.ErrInvalidPhone.Error()},
			{app.ErrSendOTP, http.StatusBadGateway, "send_failed", "Failed to send OTP"},
		}, "failed to send otp")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: requestOTPResponse{
		Message:          "OTP sent successfully",
		RequestOTPOutput: out,
	}})
}

func (h *AccountHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if ok, err := bindAndValidate(c, &req, "phone and otp are required"); !ok {
		return err
	}

	out, err := h.verifyOTP.Execute(c.Request().Context(), app.VerifyOTPInput{Phone: req.Phone, OTP: req.OTP})
	if err != nil {
		return respondError(c, h.logger, err, otpCheckErrors, "failed to verify otp")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: verifyOTPResponse{
		Message:         "OTP verified successfully",
		VerifyOTPOutput: out,
	}})
}

func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var req phoneRequest
	if ok, err := bindAndValidate(c, &req, app.ErrInvalidPhone.Error()); !ok {
		return err
	}

	out, err := h.initiateReset.Execute(c.Request().Context(), app.InitiatePasswordResetInput{Phone: req.Phone})
	if err != nil {
		return respondError(c, h.logger, err, []errorMapping{
			{app.ErrInvalidPhone, http.StatusBadRequest, "invalid_phone", app.ErrInvalidPhone.Error()},
			{app.ErrRetailerNotFound, http.StatusNotFound, "not_found", "No retailer registered with this phone number"},
		}, "failed to start password reset")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: initiateResetResponse{
		Message:                     "Phone number verified. Please request OTP to proceed.",
		InitiatePasswordResetOutput: out,
	}})
}

func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if ok, err := bindAndValidate(c, &req, "phone, otp and newPassword are required"); !ok {
		return err
	}

	err := h.resetPassword.Execute(c.Request().Context(), app.ResetPasswordInput{
		Phone:       req.Phone,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return respondError(c, h.logger, err, append([]errorMapping{
			{app.ErrWeakPassword, http.StatusBadRequest, "weak_password", app.ErrWeakPassword.Error()},
			{app.ErrRetailerNotFound, http.StatusNotFound, "not_found", "No retailer registered with this phone number"},
		}, otpCheckErrors...), "failed to reset password")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: messageData{Message: "Password reset successfully"}})
}
