package domain

// ServiceType categorizes a catalog entry.
type ServiceType string

const (
	ServiceTypeConversion ServiceType = "conversion"
	ServiceTypeOCR        ServiceType = "ocr"
	ServiceTypeFax        ServiceType = "fax"
	ServiceTypeShredding  ServiceType = "shredding"
	ServiceTypeBundle     ServiceType = "bundle"
	ServiceTypeGrievance  ServiceType = "grievance"
	ServiceTypeNotary     ServiceType = "notary"
	ServiceTypeLegal      ServiceType = "legal"
	ServiceTypeMedical    ServiceType = "medical"
	ServiceTypeFinancial  ServiceType = "financial"
)

// PricingUnit determines how quantity affects the order amount.
type PricingUnit string

const (
	UnitPerFile PricingUnit = "per_file"
	UnitPerPage PricingUnit = "per_page"
	UnitFlat    PricingUnit = "flat"
	UnitPerMB   PricingUnit = "per_mb"
)

// ServiceDefinition is one purchasable document operation. Definitions are
// loaded once at startup and never mutated afterwards; orders snapshot the
// fields they depend on so catalog edits can't change historical pricing.
type ServiceDefinition struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Type                ServiceType `json:"type"`
	Description         string      `json:"description"`
	BasePriceCents      int64       `json:"basePrice"` // minor currency units
	Unit                PricingUnit `json:"unit"`
	Enabled             bool        `json:"enabled"`
	Tags                []string    `json:"tags"`
	Icon                string      `json:"icon,omitempty"`
	EstimatedTime       string      `json:"estimatedTime,omitempty"`
	MaxFileSizeMB       int         `json:"maxFileSize,omitempty"`
	SupportedFormats    []string    `json:"supportedFormats,omitempty"`
	RequiresExtraFields []string    `json:"requiresExtraFields,omitempty"`
	Includes            []string    `json:"includes,omitempty"` // member service ids for bundles
}

// IsBundle returns true if this service is composed of member services.
func (s *ServiceDefinition) IsBundle() bool {
	return s.Type == ServiceTypeBundle
}

// HasTag checks membership in the service's tag list.
func (s *ServiceDefinition) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
