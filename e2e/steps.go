package e2e

import (
	"github.com/cucumber/godog"

	"barangay/e2e/steps/auth"
	"barangay/e2e/steps/clearance"
	"barangay/e2e/steps/common"
	"barangay/e2e/steps/registration"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register staff authentication steps
	auth.RegisterSteps(ctx, tc)

	// Register clearance submission steps
	clearance.RegisterSteps(ctx, tc)

	// Register resident registration steps
	registration.RegisterSteps(ctx, tc)
}
