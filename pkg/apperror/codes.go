package apperror

import "net/http"

// 通用
var (
	ErrInvalidInput    = New("COMMON001", http.StatusBadRequest, UITypeToast, "Invalid request.")
	ErrRouteNotFound   = New("COMMON002", http.StatusNotFound, UITypeToast, "The requested resource does not exist.")
	ErrTooManyRequests = New("COMMON003", http.StatusTooManyRequests, UITypeToast, "Too many requests. Please try again later.")
	ErrMissingDeviceID = New("COMMON004", http.StatusBadRequest, UITypeToast, "Device-Id header is required.")
	ErrUnknown         = New("COMMON999", http.StatusInternalServerError, UITypeDialog, "Something went wrong. Please try again later.")
)

// 认证
var (
	ErrMissingToken         = New("AUTH001", http.StatusUnauthorized, UITypeDialog, "Please sign in again.")
	ErrIllegalToken         = New("AUTH002", http.StatusUnauthorized, UITypeDialog, "Please sign in again.")
	ErrExpiredToken         = New("AUTH003", http.StatusUnauthorized, UITypeDialog, "Your session has expired. Please sign in again.")
	ErrLoggedOutToken       = New("AUTH004", http.StatusUnauthorized, UITypeDialog, "Please sign in again.")
	ErrPublicKeyMismatch    = New("AUTH005", http.StatusUnauthorized, UITypeDialog, "Please sign in again.")
	ErrUnsupportedPlatform  = New("AUTH006", http.StatusBadRequest, UITypeDialog, "Unsupported login platform.")
	ErrRefreshTokenMismatch = New("AUTH007", http.StatusUnauthorized, UITypeDialog, "Please sign in again.")
)

// 用户
var (
	ErrUserNotFound      = New("USER001", http.StatusNotFound, UITypeDialog, "User not found.")
	ErrInvalidNickname   = New("USER002", http.StatusBadRequest, UITypeToast, "Nickname must be 2-10 letters or digits.")
	ErrInvalidUserStatus = New("USER003", http.StatusConflict, UITypeDialog, "This action is not available for your account state.")
)

// 情侣
var (
	ErrCoupleNotFound       = New("COUPLE001", http.StatusNotFound, UITypeDialog, "Couple not found.")
	ErrInvitationNotFound   = New("COUPLE002", http.StatusNotFound, UITypeToast, "The invitation code has expired or does not exist.")
	ErrSelfInvitation       = New("COUPLE003", http.StatusBadRequest, UITypeToast, "You cannot use your own invitation code.")
	ErrRequesterNotSingle   = New("COUPLE004", http.StatusConflict, UITypeDialog, "You cannot connect with a partner in your current state.")
	ErrPartnerNotSingle     = New("COUPLE005", http.StatusConflict, UITypeDialog, "The partner cannot be connected right now.")
	ErrCoupleFull           = New("COUPLE006", http.StatusConflict, UITypeDialog, "This couple already has two members.")
	ErrSameMember           = New("COUPLE007", http.StatusBadRequest, UITypeDialog, "A couple needs two different members.")
	ErrNotCoupleMember      = New("COUPLE008", http.StatusForbidden, UITypeDialog, "You are not a member of this couple.")
	ErrInvitationConflict   = New("COUPLE009", http.StatusConflict, UITypeToast, "Could not issue an invitation code. Please try again.")
	ErrSharedMessageTooLong = New("COUPLE010", http.StatusBadRequest, UITypeToast, "The shared message is too long.")
)

// 内容
var (
	ErrContentNotFound  = New("CONTENT001", http.StatusNotFound, UITypeDialog, "Content not found.")
	ErrEmptyContent     = New("CONTENT002", http.StatusBadRequest, UITypeToast, "Title or description is required.")
	ErrContentForbidden = New("CONTENT003", http.StatusForbidden, UITypeDialog, "You cannot access this content.")
	ErrVersionConflict  = New("CONTENT004", http.StatusConflict, UITypeDialog, "Your partner changed this just now. Please refresh and try again.")
	ErrInvalidCursor    = New("CONTENT005", http.StatusBadRequest, UITypeToast, "Invalid cursor.")
)

// 日程
var (
	ErrScheduleNotFound     = New("SCHEDULE001", http.StatusNotFound, UITypeDialog, "Schedule not found.")
	ErrInvalidScheduleRange = New("SCHEDULE002", http.StatusBadRequest, UITypeToast, "The end time must not be before the start time.")
)

// 标签
var (
	ErrTagNotFound    = New("TAG001", http.StatusNotFound, UITypeToast, "Tag not found.")
	ErrInvalidTagName = New("TAG002", http.StatusBadRequest, UITypeToast, "Tag names must be 1-20 characters.")
)

// 平衡游戏
var (
	ErrBalanceGameNotFound   = New("BALANCE001", http.StatusNotFound, UITypeDialog, "There is no balance game today.")
	ErrNotEnoughOptions      = New("BALANCE002", http.StatusUnprocessableEntity, UITypeDialog, "This balance game is not ready yet.")
	ErrBalanceOptionNotFound = New("BALANCE003", http.StatusNotFound, UITypeToast, "Option not found.")
	ErrStaleBalanceGame      = New("BALANCE004", http.StatusConflict, UITypeDialog, "This balance game has ended. Please refresh.")
)

// 推送
var (
	ErrInvalidFcmToken = New("FCM001", http.StatusBadRequest, UITypeToast, "Invalid push token.")
)

// 日历
var (
	ErrInvalidDateRange = New("CALENDAR001", http.StatusBadRequest, UITypeToast, "Invalid date range.")
	ErrInvalidTimeZone  = New("CALENDAR002", http.StatusBadRequest, UITypeToast, "Invalid time zone.")
)

// 外部服务
var (
	ErrIdentityProvider = New("EXTERNAL001", http.StatusBadGateway, UITypeDialog, "The login provider is not responding. Please try again later.")
	ErrPushProvider     = New("EXTERNAL002", http.StatusBadGateway, UITypeDialog, "The push provider is not responding.")
	ErrHolidayProvider  = New("EXTERNAL003", http.StatusBadGateway, UITypeDialog, "The holiday provider is not responding.")
)
