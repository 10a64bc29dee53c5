package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/domain"
	"github.com/ivangarciagi10/email-servicev2/internal/shopify"
	apperrors "github.com/ivangarciagi10/email-servicev2/pkg/errors"
)

// AdvisorRole is the fixed role label on every resolved advisor.
const AdvisorRole = "Ejecutivo de Cuenta"

const (
	advisorMetafieldNamespace = "custom"
	advisorMetafieldKey       = "ejecutivo_de_cuenta"
)

// Executor abstracts the Shopify GraphQL client so the resolver can be
// tested against canned responses.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
}

// AdvisorResolver walks the two-step customer -> metafield -> metaobject
// lookup that yields the assigned account executive.
type AdvisorResolver struct {
	client Executor
	logger *zap.Logger
}

// NewAdvisorResolver creates a new advisor resolver
func NewAdvisorResolver(client Executor, logger *zap.Logger) *AdvisorResolver {
	return &AdvisorResolver{
		client: client,
		logger: logger,
	}
}

// Resolve returns the advisor assigned to the customer, or ErrNotFound. Any
// query error, missing field or malformed metaobject reference yields
// not-found; the resolver never returns a partial advisor.
func (r *AdvisorResolver) Resolve(ctx context.Context, customerID int64) (*domain.Advisor, error) {
	// Zero is the placeholder-customer sentinel; there is nothing to look up.
	if customerID == 0 {
		return nil, r.notFound(customerID, "placeholder customer", nil)
	}

	metaobjectGID, err := r.findAdvisorReference(ctx, customerID)
	if err != nil {
		return nil, r.notFound(customerID, "advisor metafield lookup failed", err)
	}
	if metaobjectGID == "" {
		return nil, r.notFound(customerID, "no account executive metafield", nil)
	}

	if !strings.Contains(metaobjectGID, "Metaobject/") {
		return nil, r.notFound(customerID, "invalid metaobject reference: "+metaobjectGID, nil)
	}

	// Reference format: gid://shopify/Metaobject/123456789
	segments := strings.Split(metaobjectGID, "/")
	metaobjectID, err := strconv.ParseInt(segments[len(segments)-1], 10, 64)
	if err != nil {
		return nil, r.notFound(customerID, "unparseable metaobject id", err)
	}

	advisor, err := r.fetchAdvisor(ctx, metaobjectGID, metaobjectID)
	if err != nil {
		return nil, r.notFound(customerID, "metaobject lookup failed", err)
	}

	r.logger.Info("Advisor resolved",
		zap.Int64("customer_id", customerID),
		zap.Int64("advisor_id", advisor.ID),
		zap.String("advisor_email", advisor.Email),
	)
	return advisor, nil
}

// findAdvisorReference fetches the customer's metafields and returns the
// metaobject reference stored under custom.ejecutivo_de_cuenta, or "" when
// the customer has no assignment.
func (r *AdvisorResolver) findAdvisorReference(ctx context.Context, customerID int64) (string, error) {
	variables := map[string]interface{}{
		"id": fmt.Sprintf("gid://shopify/Customer/%d", customerID),
	}

	resp, err := r.client.Execute(ctx, shopify.CustomerWithMetafieldsQuery, variables)
	if err != nil {
		return "", fmt.Errorf("get customer: %w", err)
	}

	var result struct {
		Customer *struct {
			ID         string `json:"id"`
			FirstName  string `json:"firstName"`
			LastName   string `json:"lastName"`
			Email      string `json:"email"`
			Metafields struct {
				Edges []struct {
					Node domain.Metafield `json:"node"`
				} `json:"edges"`
			} `json:"metafields"`
		} `json:"customer"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("parse customer response: %w", err)
	}
	if result.Customer == nil {
		return "", fmt.Errorf("customer %d not found in shopify", customerID)
	}

	for _, edge := range result.Customer.Metafields.Edges {
		if edge.Node.Namespace == advisorMetafieldNamespace && edge.Node.Key == advisorMetafieldKey {
			return edge.Node.Value, nil
		}
	}
	return "", nil
}

// fetchAdvisor fetches the referenced metaobject and builds the advisor from
// its fields. "nombre" and "correo" are required; "telefono" is optional.
func (r *AdvisorResolver) fetchAdvisor(ctx context.Context, metaobjectGID string, metaobjectID int64) (*domain.Advisor, error) {
	variables := map[string]interface{}{
		"id": metaobjectGID,
	}

	resp, err := r.client.Execute(ctx, shopify.MetaobjectQuery, variables)
	if err != nil {
		return nil, fmt.Errorf("get metaobject: %w", err)
	}

	var result struct {
		Metaobject *struct {
			ID     string                   `json:"id"`
			Type   string                   `json:"type"`
			Fields []domain.MetaobjectField `json:"fields"`
		} `json:"metaobject"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse metaobject response: %w", err)
	}
	if result.Metaobject == nil {
		return nil, fmt.Errorf("metaobject %s not found", metaobjectGID)
	}

	fields := make(map[string]string, len(result.Metaobject.Fields))
	for _, f := range result.Metaobject.Fields {
		fields[f.Key] = f.Value
	}

	email, ok := fields["correo"]
	if !ok || email == "" {
		return nil, fmt.Errorf("metaobject %s has no correo field", metaobjectGID)
	}
	if _, ok := fields["nombre"]; !ok {
		return nil, fmt.Errorf("metaobject %s has no nombre field", metaobjectGID)
	}

	// A present-but-empty name yields empty first/last names, not an error.
	firstName, lastName := splitFullName(fields["nombre"])

	return &domain.Advisor{
		ID:        metaobjectID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     fields["telefono"],
		Role:      AdvisorRole,
	}, nil
}

func (r *AdvisorResolver) notFound(customerID int64, reason string, err error) error {
	r.logger.Warn("Advisor not found",
		zap.Int64("customer_id", customerID),
		zap.String("reason", reason),
		zap.Error(err),
	)
	return &apperrors.ErrNotFound{Resource: "advisor", ID: strconv.FormatInt(customerID, 10)}
}

// splitFullName splits on whitespace: first token is the first name, the
// rest joined is the last name.
func splitFullName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
