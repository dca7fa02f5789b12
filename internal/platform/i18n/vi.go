// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

var viVN = map[Key]string{
	// ===== Fields =====
	IdentifierRequired:  "Vui lòng nhập địa chỉ email",
	IdentifierMalformed: "Vui lòng nhập địa chỉ email hợp lệ",
	SecretRequired:      "Vui lòng nhập mật khẩu",
	SecretTooShort:      "Mật khẩu phải có ít nhất 6 ký tự",
	SecretWeak:          "Hãy cân nhắc sử dụng mật khẩu mạnh hơn",

	// ===== Notifications =====
	MsgFixErrors:      "Vui lòng sửa các lỗi trước khi gửi",
	MsgLoginSuccess:   "Đăng nhập thành công! Đang chuyển đến bảng điều khiển...",
	MsgSocialRedirect: "Đang chuyển hướng đến trang xác thực {0}...",
	MsgResetNeedEmail: "Vui lòng nhập địa chỉ email hợp lệ để đặt lại mật khẩu",
	MsgResetSent:      "Hướng dẫn đặt lại mật khẩu đã được gửi tới {0}",
	MsgSignupRedirect: "Đang chuyển đến trang đăng ký...",

	// ===== Errors =====
	ErrAccountNotFound:    "Không tìm thấy tài khoản với địa chỉ email này",
	ErrInvalidCredentials: "Mật khẩu không đúng. Vui lòng thử lại.",
	ErrAccountDisabled:    "Tài khoản này đã bị vô hiệu hóa",
	ErrUnexpected:         "Đã xảy ra lỗi. Vui lòng thử lại.",

	// ===== Labels =====
	LabelShowPassword: "Hiện mật khẩu",
	LabelHidePassword: "Ẩn mật khẩu",
	LabelSignIn:       "Đăng nhập",
	LabelSigningIn:    "Đang đăng nhập...",
}
