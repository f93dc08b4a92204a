package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eslconsole/internal/client/client"
	"github.com/dmitrijs2005/eslconsole/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. The last used email is offered
// as the default. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	last, err := a.auth.LastEmail(ctx)
	if err != nil {
		a.log.Debug(ctx, "no remembered email", "error", err)
	}
	f := newForm(a.reader, a.out)
	email := last
	f.text("Enter email", &email)
	if f.err != nil {
		return f.err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.LoginWithPassword(ctx, email, string(password)); err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
			return errors.New("server unavailable, try again later")
		}
		return errors.New("invalid email or password")
	}

	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, okStyle.Render("Login successful"))
	return a.WhoAmI(ctx)
}

// Logout always ends the session locally, even when the stored token could
// not be removed.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return err
}

func (a *App) WhoAmI(ctx context.Context) error {
	st := a.session.Snapshot()
	if st.User == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s mode=%s\n", st.User.DisplayName(), st.User.Email, st.User.Role, a.currentMode())
	if !st.TokenExpiry.IsZero() {
		fmt.Fprintf(a.out, "session expires %s\n", st.TokenExpiry.Local().Format(time.DateTime))
	}
	return nil
}
