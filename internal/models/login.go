package models

// LoginStatus is the three-way outcome of a login attempt.
type LoginStatus string

const (
	LoginAdmin LoginStatus = "Admin"
	LoginUser  LoginStatus = "User"
	LoginFail  LoginStatus = "Fail"
)

// LoginResult carries the outcome of a login. Reason is set only when
// Status is LoginFail.
type LoginResult struct {
	Status LoginStatus
	Reason string
}

func LoginSucceeded(role Role) LoginResult {
	if role == RoleAdministrator {
		return LoginResult{Status: LoginAdmin}
	}
	return LoginResult{Status: LoginUser}
}

func LoginFailed(reason string) LoginResult {
	return LoginResult{Status: LoginFail, Reason: reason}
}

func (r LoginResult) OK() bool {
	return r.Status != LoginFail
}
