package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bizkit/backend/internal/domain/tenant"
	"github.com/bizkit/backend/internal/infrastructure/logger"
	"github.com/bizkit/backend/internal/interfaces/http/dto"
)

// Company context keys
const (
	CompanyIDKey        = "company_id"
	CompanySubdomainKey = "company_subdomain"
	CompanyHeaderKey    = "X-Company-ID"
	TenantHeaderKey     = "X-Tenant-ID"
)

// Company validation errors
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyInactive = errors.New("company is not active")
)

// CompanyInfo holds the resolved company identity for a request
type CompanyInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
}

// CompanyValidator resolves and validates the company a request belongs to
type CompanyValidator interface {
	// ValidateCompany checks that the company exists and is active
	ValidateCompany(ctx context.Context, companyID uuid.UUID) (*CompanyInfo, error)
	// ResolveSubdomain maps a request subdomain to an active company
	ResolveSubdomain(ctx context.Context, subdomain string) (*CompanyInfo, error)
	// ResolveDefault returns the oldest registered company.
	// Development fallback when the request carries no company context.
	ResolveDefault(ctx context.Context) (*CompanyInfo, error)
}

// CompanyMiddlewareConfig holds configuration for company middleware
type CompanyMiddlewareConfig struct {
	// HeaderEnabled enables X-Company-ID / X-Tenant-ID header extraction
	HeaderEnabled bool
	// JWTEnabled enables JWT claim extraction (requires JWT middleware to run first)
	JWTEnabled bool
	// SubdomainEnabled enables subdomain extraction
	SubdomainEnabled bool
	// BaseDomain is the base domain for subdomain extraction (e.g., "bizkit.app")
	BaseDomain string
	// SkipPaths are paths that don't require company context
	SkipPaths []string
	// Required determines if company context is mandatory
	Required bool
	// AllowDefaultCompany falls back to the validator's default company
	// when no context is found. Development only.
	AllowDefaultCompany bool
	// Validator checks that the company exists and is active
	Validator CompanyValidator
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultCompanyConfig returns default company middleware configuration
func DefaultCompanyConfig(validator CompanyValidator) CompanyMiddlewareConfig {
	return CompanyMiddlewareConfig{
		HeaderEnabled:    true,
		JWTEnabled:       true,
		SubdomainEnabled: false,
		BaseDomain:       "",
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Required:            true,
		AllowDefaultCompany: false,
		Validator:           validator,
		Logger:              nil,
	}
}

// CompanyMiddleware extracts the company identity from the request.
// Extraction order: JWT claim > X-Company-ID / X-Tenant-ID header > subdomain.
func CompanyMiddleware(validator CompanyValidator) gin.HandlerFunc {
	return CompanyMiddlewareWithConfig(DefaultCompanyConfig(validator))
}

// CompanyMiddlewareWithConfig returns company middleware with custom configuration
func CompanyMiddlewareWithConfig(cfg CompanyMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		ctx := c.Request.Context()

		var companyID string
		var extractionMethod string

		// Priority 1: JWT claims (if JWT middleware has already run)
		if cfg.JWTEnabled {
			if claimID := GetJWTCompanyID(c); claimID != "" {
				companyID = claimID
				extractionMethod = "jwt"
			}
		}

		// Priority 2: X-Company-ID / X-Tenant-ID header
		if companyID == "" && cfg.HeaderEnabled {
			if headerID := c.GetHeader(CompanyHeaderKey); headerID != "" {
				companyID = headerID
				extractionMethod = "header"
			} else if headerID := c.GetHeader(TenantHeaderKey); headerID != "" {
				companyID = headerID
				extractionMethod = "header"
			}
		}

		var info *CompanyInfo

		// Priority 3: subdomain lookup via the validator
		if companyID == "" && cfg.SubdomainEnabled && cfg.BaseDomain != "" && cfg.Validator != nil {
			if subdomain := extractSubdomain(c.Request.Host, cfg.BaseDomain); subdomain != "" {
				resolved, err := cfg.Validator.ResolveSubdomain(ctx, subdomain)
				if err != nil {
					respondCompanyError(c, cfg, err)
					return
				}
				info = resolved
				companyID = resolved.ID.String()
				extractionMethod = "subdomain"
			}
		}

		// Development fallback
		if companyID == "" && cfg.AllowDefaultCompany && cfg.Validator != nil {
			resolved, err := cfg.Validator.ResolveDefault(ctx)
			if err == nil && resolved != nil {
				info = resolved
				companyID = resolved.ID.String()
				extractionMethod = "default"
			}
		}

		if companyID == "" {
			if cfg.Required {
				requestID := logger.GetRequestID(ctx)
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeTenantRequired,
						"Company identification required", requestID))
				return
			}
			c.Next()
			return
		}

		companyUUID, err := uuid.Parse(companyID)
		if err != nil {
			requestID := logger.GetRequestID(ctx)
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeTenantRequired,
					"Invalid company ID format", requestID))
			return
		}

		// Validate that the company exists and is active, unless the
		// subdomain lookup already did
		if info == nil && cfg.Validator != nil {
			info, err = cfg.Validator.ValidateCompany(ctx, companyUUID)
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Warn("Company validation failed",
						zap.String("company_id", companyID),
						zap.Error(err),
					)
				}
				respondCompanyError(c, cfg, err)
				return
			}
		}

		c.Set(CompanyIDKey, companyID)
		if info != nil {
			c.Set(CompanySubdomainKey, info.Subdomain)
		}

		// Set in request context for service layer access
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithCompanyID(ctx, log, companyID)
		c.Request = c.Request.WithContext(ctx)

		if cfg.Logger != nil {
			cfg.Logger.Debug("Company identified",
				zap.String("company_id", companyID),
				zap.String("method", extractionMethod),
			)
		}

		c.Next()
	}
}

// respondCompanyError maps company validation errors to HTTP responses
func respondCompanyError(c *gin.Context, cfg CompanyMiddlewareConfig, err error) {
	requestID := logger.GetRequestID(c.Request.Context())
	if errors.Is(err, ErrCompanyInactive) {
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeTenantInactive,
				"Company is suspended or cancelled", requestID))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeTenantRequired,
			"Unknown company", requestID))
}

// extractSubdomain extracts the company subdomain from the request host.
// e.g., "acme.bizkit.app" with baseDomain "bizkit.app" returns "acme".
func extractSubdomain(host, baseDomain string) string {
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if !strings.HasSuffix(host, baseDomain) {
		return ""
	}

	subdomain := strings.TrimSuffix(host, "."+baseDomain)
	if subdomain == host || subdomain == "" || subdomain == "www" {
		return ""
	}

	// First label only, in case of multi-level subdomains
	parts := strings.Split(subdomain, ".")
	return parts[0]
}

// GetCompanyID retrieves the company ID from gin.Context
func GetCompanyID(c *gin.Context) string {
	if companyID, exists := c.Get(CompanyIDKey); exists {
		if id, ok := companyID.(string); ok {
			return id
		}
	}
	return ""
}

// GetCompanyUUID retrieves the company ID as UUID from gin.Context
func GetCompanyUUID(c *gin.Context) (uuid.UUID, error) {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(companyID)
}

// MustGetCompanyUUID retrieves the company ID as UUID or panics if not found.
// Use this only in handlers behind the company middleware.
func MustGetCompanyUUID(c *gin.Context) uuid.UUID {
	companyUUID, err := GetCompanyUUID(c)
	if err != nil || companyUUID == uuid.Nil {
		panic("valid company_id not found in context")
	}
	return companyUUID
}

// GetCompanySubdomain retrieves the company subdomain from gin.Context
func GetCompanySubdomain(c *gin.Context) string {
	if subdomain, exists := c.Get(CompanySubdomainKey); exists {
		if s, ok := subdomain.(string); ok {
			return s
		}
	}
	return ""
}

// RepositoryCompanyValidator validates companies against the company repository
type RepositoryCompanyValidator struct {
	companies tenant.CompanyRepository
}

// NewRepositoryCompanyValidator creates a repository backed company validator
func NewRepositoryCompanyValidator(companies tenant.CompanyRepository) *RepositoryCompanyValidator {
	return &RepositoryCompanyValidator{companies: companies}
}

func (v *RepositoryCompanyValidator) ValidateCompany(ctx context.Context, companyID uuid.UUID) (*CompanyInfo, error) {
	company, err := v.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, ErrCompanyNotFound
	}
	return companyInfo(company)
}

func (v *RepositoryCompanyValidator) ResolveSubdomain(ctx context.Context, subdomain string) (*CompanyInfo, error) {
	company, err := v.companies.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, ErrCompanyNotFound
	}
	return companyInfo(company)
}

func (v *RepositoryCompanyValidator) ResolveDefault(ctx context.Context) (*CompanyInfo, error) {
	company, err := v.companies.FindFirst(ctx)
	if err != nil {
		return nil, ErrCompanyNotFound
	}
	return companyInfo(company)
}

func companyInfo(company *tenant.Company) (*CompanyInfo, error) {
	if !company.IsActive() {
		return nil, ErrCompanyInactive
	}
	return &CompanyInfo{
		ID:        company.ID,
		Name:      company.Name,
		Subdomain: company.Subdomain,
	}, nil
}
