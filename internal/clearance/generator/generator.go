// Package generator orchestrates the provider calls that materialize a
// clearance document: copy the template, insert the applicant photo, apply
// the replacement table, bold the name where the type calls for it.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	clearancemetrics "barangay/internal/clearance/metrics"
	"barangay/internal/clearance/policy"
	"barangay/internal/docs"
	dErrors "barangay/pkg/domain-errors"
	"barangay/pkg/names"
	"barangay/pkg/platform/sentinel"
	"barangay/pkg/requestcontext"
)

// Photo placeholder tokens. <pic> is the legacy spelling still present in
// older templates.
const (
	pictureToken       = "<picture>"
	legacyPictureToken = "<pic>"
)

// ID photos are inserted at a fixed size matching the template's reserved box.
const (
	photoWidthPt  = 110
	photoHeightPt = 110
)

// Rate-limited template copies are retried with 2s/4s/8s delays before the
// failure escalates. Only the copy step retries; everything after it would
// duplicate work on an already-created document.
const (
	copyRetryInitialInterval = 2 * time.Second
	copyMaxRetries           = 3
)

// Config binds clearance types to externally-configured template IDs and names
// the destination and photo folders.
type Config struct {
	Templates     map[policy.Type]string
	FolderID      string
	PhotoFolderID string
}

// Result identifies the generated document.
type Result struct {
	DocumentID  string
	DocumentURL string
}

// Generator drives a docs.Provider to produce clearance documents.
type Generator struct {
	provider docs.Provider
	cfg      Config
	logger   *slog.Logger
	metrics  *clearancemetrics.Metrics

	// retryInterval is the first copy-retry delay; shortened in tests.
	retryInterval time.Duration
}

type Option func(*Generator)

func WithMetrics(m *clearancemetrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

func New(provider docs.Provider, cfg Config, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{provider: provider, cfg: cfg, logger: logger, retryInterval: copyRetryInitialInterval}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate materializes one clearance document. The sequence is not atomic:
// a failure after the copy leaves a created-but-unlinked document behind, and
// re-invoking creates a second one. Callers own the submission status update.
func (g *Generator) Generate(ctx context.Context, in policy.Input) (Result, error) {
	start := time.Now()

	templateID := g.cfg.Templates[in.Type]
	if templateID == "" {
		return Result{}, dErrors.Newf(dErrors.CodeValidation, "no template configured for clearance type %q", in.Type)
	}

	table, err := policy.Build(in)
	if err != nil {
		return Result{}, err
	}

	name := fmt.Sprintf("%s - %s Clearance", strings.TrimSpace(in.Name), in.Type.DisplayName())
	documentID, err := g.copyTemplate(ctx, templateID, name)
	if err != nil {
		return Result{}, err
	}

	// Image insertion locates the <picture> token by its literal text, so it
	// has to run before the batch substitution blanks that token out.
	if in.Type.TakesPhoto() {
		g.insertPhoto(ctx, documentID, in.NameParts())
	}

	replacements := make([]docs.Replacement, 0, len(table))
	for key, value := range table {
		replacements = append(replacements, docs.Replacement{Match: "<" + key + ">", Value: value})
	}
	if err := g.provider.ReplaceAllText(ctx, documentID, replacements); err != nil {
		return Result{}, g.classify(ctx, err, "replace placeholder text")
	}

	if in.Type.BoldsName() {
		g.boldName(ctx, documentID, names.Upper(in.FullName()))
	}

	if g.metrics != nil {
		g.metrics.IncrementGenerated(string(in.Type))
		g.metrics.ObserveGenerate(start)
	}
	return Result{DocumentID: documentID, DocumentURL: g.provider.DocumentURL(documentID)}, nil
}

func (g *Generator) copyTemplate(ctx context.Context, templateID, name string) (string, error) {
	policyBackoff := backoff.NewExponentialBackOff()
	policyBackoff.InitialInterval = g.retryInterval
	policyBackoff.Multiplier = 2
	policyBackoff.RandomizationFactor = 0

	var documentID string
	operation := func() error {
		id, err := g.provider.CopyTemplate(ctx, templateID, g.cfg.FolderID, name)
		if err != nil {
			if errors.Is(err, sentinel.ErrRateLimited) {
				if g.metrics != nil {
					g.metrics.CopyRetries.Inc()
				}
				g.logger.WarnContext(ctx, "template copy rate limited, retrying", "template_id", templateID)
				return err
			}
			return backoff.Permanent(err)
		}
		documentID = id
		return nil
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policyBackoff, copyMaxRetries), ctx))
	if err != nil {
		return "", g.classify(ctx, err, "copy template")
	}
	return documentID, nil
}

// insertPhoto finds the picture token, matches a photo file, and swaps the
// token for an inline image. Every failure path is best-effort: a missing
// photo removes the token so it never shows in the finished document, and
// provider errors are logged and swallowed.
func (g *Generator) insertPhoto(ctx context.Context, documentID string, parts names.Parts) {
	doc, err := g.provider.GetDocument(ctx, documentID)
	if err != nil {
		g.logger.WarnContext(ctx, "photo step skipped: read document", "error", err.Error())
		return
	}

	token := pictureToken
	r, ok := doc.FindFirst(token, false)
	if !ok {
		token = legacyPictureToken
		if r, ok = doc.FindFirst(token, false); !ok {
			return
		}
	}

	files, err := g.provider.ListFiles(ctx, g.cfg.PhotoFolderID)
	if err != nil {
		g.logger.WarnContext(ctx, "photo step skipped: list photos", "error", err.Error())
		return
	}
	photo, ok := matchPhoto(files, parts)

	if err := g.provider.DeleteRange(ctx, documentID, r.Start, r.End); err != nil {
		g.logger.WarnContext(ctx, "photo step: remove token", "error", err.Error())
		return
	}
	if !ok {
		if g.metrics != nil {
			g.metrics.PhotoMisses.Inc()
		}
		g.logger.InfoContext(ctx, "no matching photo, token removed",
			"last_name", parts.Last, "request_id", requestcontext.RequestID(ctx))
		return
	}
	size := docs.Size{WidthPt: photoWidthPt, HeightPt: photoHeightPt}
	if err := g.provider.InsertInlineImage(ctx, documentID, r.Start, g.provider.FileURL(photo.ID), size); err != nil {
		g.logger.WarnContext(ctx, "photo step: insert image", "error", err.Error())
	}
}

// boldName styles every occurrence of the upper-cased applicant name,
// including inside table cells. Absence of a match is tolerated; styling is
// never fatal.
func (g *Generator) boldName(ctx context.Context, documentID, upperName string) {
	if upperName == "" {
		return
	}
	doc, err := g.provider.GetDocument(ctx, documentID)
	if err != nil {
		g.logger.WarnContext(ctx, "bold step skipped: read document", "error", err.Error())
		return
	}
	for _, r := range doc.FindText(upperName, false) {
		if err := g.provider.UpdateTextStyle(ctx, documentID, r.Start, r.End, docs.TextStyle{Bold: true}); err != nil {
			g.logger.WarnContext(ctx, "bold step: style range", "error", err.Error())
			return
		}
	}
}

// classify translates provider failures into the coded taxonomy. Credential
// failures get an actionable hint in the log but surface generically.
func (g *Generator) classify(ctx context.Context, err error, step string) error {
	switch {
	case errors.Is(err, sentinel.ErrCredential):
		g.logger.ErrorContext(ctx, "provider credential rejected; re-authorize and update the refresh token",
			"step", step, "error", err.Error())
		return dErrors.Wrap(err, dErrors.CodeInternal, "document provider authorization failed")
	case errors.Is(err, sentinel.ErrRateLimited):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "document provider rate limit exhausted")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "template or document not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, step+" failed")
	}
}
