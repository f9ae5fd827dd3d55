package registration

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetRegistrationID() string
	SetRegistrationID(id string)
}

// RegisterSteps registers resident registration step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrationSteps{tc: tc}

	ctx.Step(`^I apply for registration as "([^"]*)" "([^"]*)" born on "([^"]*)" in purok "([^"]*)"$`, steps.apply)
	ctx.Step(`^I save the registration id$`, steps.saveRegistrationID)
	ctx.Step(`^I approve the saved registration$`, steps.approve)
	ctx.Step(`^I reject the saved registration$`, steps.reject)
	ctx.Step(`^I list residents in purok "([^"]*)"$`, steps.listResidentsInPurok)
}

type registrationSteps struct {
	tc TestContext
}

func (s *registrationSteps) apply(ctx context.Context, firstName, lastName, birthdate, purok string) error {
	return s.tc.POST("/residents/registrations", map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"birthdate":  birthdate + "T00:00:00Z",
		"purok":      purok,
	})
}

func (s *registrationSteps) saveRegistrationID(ctx context.Context) error {
	id, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.SetRegistrationID(id.(string))
	return nil
}

func (s *registrationSteps) approve(ctx context.Context) error {
	if s.tc.GetRegistrationID() == "" {
		return fmt.Errorf("no registration id saved")
	}
	return s.tc.POST("/admin/registrations/"+s.tc.GetRegistrationID()+"/approve", nil)
}

func (s *registrationSteps) reject(ctx context.Context) error {
	if s.tc.GetRegistrationID() == "" {
		return fmt.Errorf("no registration id saved")
	}
	return s.tc.POST("/admin/registrations/"+s.tc.GetRegistrationID()+"/reject", nil)
}

func (s *registrationSteps) listResidentsInPurok(ctx context.Context, purok string) error {
	return s.tc.GET("/admin/residents?purok="+purok, nil)
}
