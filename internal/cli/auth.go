package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bannerkeeper/internal/auth"
	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an identity, a password and the administrator flag
// and creates the account.
func (a *App) Register(ctx context.Context) error {
	identity, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	admin, err := GetYesNo(a.reader, "Administrator account?", a.out)
	if err != nil {
		return err
	}

	ok, err := a.services.Accounts.Register(ctx, identity, password, admin)
	if err != nil {
		return err
	}
	if !ok {
		a.println("User name is already taken")
		return nil
	}

	a.println("Success!")
	return nil
}

// Login verifies the credentials and starts a session. A failed attempt is
// reported to the user and is not an error.
func (a *App) Login(ctx context.Context) error {
	identity, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.services.Accounts.Login(ctx, identity, password)
	if err != nil {
		return err
	}
	if !res.OK() {
		a.println("Login failed:", res.Reason)
		return nil
	}

	role := models.RoleStandard
	if res.Status == models.LoginAdmin {
		role = models.RoleAdministrator
	}
	token, err := auth.GenerateToken(identity, role, a.secret, a.config.SessionTTL)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	a.setSession(identity, token)
	a.logger.Info(ctx, "logged in", "identity", identity, "role", string(role))
	a.println(fmt.Sprintf("Logged in as %s (%s)", identity, res.Status))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.clearSession()
	a.println("Logged out")
	return nil
}
