package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetAccessToken() string
	SetAccessToken(token string)
}

// RegisterSteps registers staff authentication step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, steps.loggedIn)
	ctx.Step(`^I log out$`, steps.logout)
	ctx.Step(`^I clear my token$`, steps.clearToken)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) login(ctx context.Context, username, password string) error {
	return s.tc.POST("/admin/login", map[string]interface{}{
		"username": username,
		"password": password,
	})
}

// loggedIn performs the login and saves the token so later admin requests
// carry it.
func (s *authSteps) loggedIn(ctx context.Context, username, password string) error {
	if err := s.login(ctx, username, password); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("login failed with status %d", status)
	}
	token, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	s.tc.SetAccessToken(token.(string))
	return nil
}

func (s *authSteps) logout(ctx context.Context) error {
	return s.tc.POST("/admin/logout", nil)
}

func (s *authSteps) clearToken(ctx context.Context) error {
	s.tc.SetAccessToken("")
	return nil
}
