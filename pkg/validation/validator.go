package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dd0wney/cluso-followgraph/pkg/graph"
	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxSnapshotNodes bounds the size of a graph accepted from a snapshot.
	MaxSnapshotNodes = 1_000_000
	// MaxSnapshotEdges bounds the edge list accepted from a snapshot.
	MaxSnapshotEdges = 20_000_000

	// canonical keys never contain whitespace, '@' or '/'
	keyPattern = regexp.MustCompile(`^[^\s@/]+$`)
)

// ErrInvalidGraph is wrapped by every error ValidateGraph returns.
var ErrInvalidGraph = errors.New("invalid graph")

func init() {
	validate = validator.New()
}

// ValidateNodeRecord validates a single account record
func ValidateNodeRecord(rec *graph.NodeRecord) error {
	if rec == nil {
		return errors.New("node record cannot be nil")
	}
	if err := validate.Struct(rec); err != nil {
		return formatValidationError(err)
	}
	if key := graph.Canonical(rec.Username); !keyPattern.MatchString(key) {
		return fmt.Errorf("Username: %q is not a valid account handle", rec.Username)
	}
	return nil
}

// ValidateEdge validates a single edge
func ValidateEdge(edge *graph.Edge) error {
	if err := validate.Struct(edge); err != nil {
		return formatValidationError(err)
	}
	if !keyPattern.MatchString(edge.Source) {
		return fmt.Errorf("Source: %q is not a canonical username", edge.Source)
	}
	if !keyPattern.MatchString(edge.Target) {
		return fmt.Errorf("Target: %q is not a canonical username", edge.Target)
	}
	return nil
}

// ValidateGraph checks a decoded snapshot before analysis: size limits,
// record schema and edge endpoints. Edges may reference accounts absent
// from the node set; the analyzers tolerate them.
func ValidateGraph(g *graph.Graph) error {
	if g == nil {
		return fmt.Errorf("%w: graph cannot be nil", ErrInvalidGraph)
	}
	if n := g.NodeCount(); n > MaxSnapshotNodes {
		return fmt.Errorf("%w: %d nodes exceeds maximum %d", ErrInvalidGraph, n, MaxSnapshotNodes)
	}
	if n := g.EdgeCount(); n > MaxSnapshotEdges {
		return fmt.Errorf("%w: %d edges exceeds maximum %d", ErrInvalidGraph, n, MaxSnapshotEdges)
	}

	for _, key := range g.Keys() {
		if err := ValidateNodeRecord(g.Node(key)); err != nil {
			return fmt.Errorf("%w: node %q: %v", ErrInvalidGraph, key, err)
		}
	}
	for i := range g.Edges {
		if err := ValidateEdge(&g.Edges[i]); err != nil {
			return fmt.Errorf("%w: edges[%d]: %v", ErrInvalidGraph, i, err)
		}
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "url":
			return fmt.Errorf("%s: must be a valid URL", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
