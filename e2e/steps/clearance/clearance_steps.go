package clearance

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
	GetSubmissionID() string
	SetSubmissionID(id string)
}

// RegisterSteps registers clearance submission step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &clearanceSteps{tc: tc}

	ctx.Step(`^I file a "([^"]*)" clearance request for "([^"]*)" with purpose "([^"]*)"$`, steps.fileRequest)
	ctx.Step(`^I save the submission id$`, steps.saveSubmissionID)
	ctx.Step(`^I generate the document for the saved submission$`, steps.generateDocument)
	ctx.Step(`^I reject the saved submission$`, steps.rejectSubmission)
	ctx.Step(`^I fetch the saved submission$`, steps.fetchSubmission)
	ctx.Step(`^I list submissions with status "([^"]*)"$`, steps.listByStatus)
}

type clearanceSteps struct {
	tc TestContext
}

func (s *clearanceSteps) fileRequest(ctx context.Context, clearanceType, name, purpose string) error {
	return s.tc.POST("/clearance/submissions", map[string]interface{}{
		"clearance_type": clearanceType,
		"name":           name,
		"form_data":      map[string]string{"purpose": purpose},
	})
}

func (s *clearanceSteps) saveSubmissionID(ctx context.Context) error {
	id, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.SetSubmissionID(id.(string))
	return nil
}

func (s *clearanceSteps) generateDocument(ctx context.Context) error {
	if s.tc.GetSubmissionID() == "" {
		return fmt.Errorf("no submission id saved")
	}
	return s.tc.POST("/admin/submissions/"+s.tc.GetSubmissionID()+"/generate", nil)
}

func (s *clearanceSteps) rejectSubmission(ctx context.Context) error {
	if s.tc.GetSubmissionID() == "" {
		return fmt.Errorf("no submission id saved")
	}
	return s.tc.POST("/admin/submissions/"+s.tc.GetSubmissionID()+"/reject", nil)
}

func (s *clearanceSteps) fetchSubmission(ctx context.Context) error {
	return s.tc.GET("/admin/submissions/"+s.tc.GetSubmissionID(), nil)
}

func (s *clearanceSteps) listByStatus(ctx context.Context, status string) error {
	return s.tc.GET("/admin/submissions?status="+status, nil)
}
