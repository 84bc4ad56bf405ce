package dto

// LoginRequest carries the login form fields.
type LoginRequest struct {
	LoginName string `json:"loginName" form:"loginName"`
	Password  string `json:"password" form:"password"`
}

// GoogleLoginRequest carries the raw ID token posted by the frontend after a
// Google sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// ExchangeCodeRequest carries an OAuth authorization code for the
// server-side exchange variant of the Google login.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleLoginResponse is returned on a successful external login. Redirect
// depends on the resolved role.
type GoogleLoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}
