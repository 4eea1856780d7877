package catalog

import "filesolved/internal/core/domain"

// Default returns the embedded production catalog. Prices are in minor
// currency units (cents).
func Default() []domain.ServiceDefinition {
	return []domain.ServiceDefinition{
		// Conversion services
		{
			ID: "pdf_to_word", Name: "PDF to Word Conversion", Type: domain.ServiceTypeConversion,
			Description:    "Convert PDF documents into editable Word files with formatting preserved.",
			BasePriceCents: 299, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"pdf", "word", "conversion", "docx"}, Icon: "FileText",
			EstimatedTime: "30 seconds", MaxFileSizeMB: 50, SupportedFormats: []string{".pdf"},
		},
		{
			ID: "word_to_pdf", Name: "Word to PDF Conversion", Type: domain.ServiceTypeConversion,
			Description:    "Convert Word documents to professional PDF format.",
			BasePriceCents: 199, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"word", "pdf", "conversion", "docx"}, Icon: "FileOutput",
			EstimatedTime: "20 seconds", MaxFileSizeMB: 50, SupportedFormats: []string{".doc", ".docx"},
		},
		{
			ID: "jpg_to_pdf", Name: "Image to PDF Conversion", Type: domain.ServiceTypeConversion,
			Description:    "Convert JPG, PNG, and other images to PDF documents.",
			BasePriceCents: 149, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"image", "jpg", "png", "pdf", "conversion"}, Icon: "Image",
			EstimatedTime: "15 seconds", MaxFileSizeMB: 25,
			SupportedFormats: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"},
		},
		{
			ID: "excel_to_pdf", Name: "Excel to PDF Conversion", Type: domain.ServiceTypeConversion,
			Description:    "Convert Excel spreadsheets to PDF format.",
			BasePriceCents: 199, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"excel", "pdf", "conversion", "xlsx"}, Icon: "Table",
			EstimatedTime: "20 seconds", MaxFileSizeMB: 50, SupportedFormats: []string{".xls", ".xlsx"},
		},
		{
			ID: "pdf_to_jpg", Name: "PDF to Image Extraction", Type: domain.ServiceTypeConversion,
			Description:    "Extract pages from PDF files as high-quality images.",
			BasePriceCents: 199, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"pdf", "image", "jpg", "extraction"}, Icon: "Images",
			EstimatedTime: "30 seconds", MaxFileSizeMB: 50, SupportedFormats: []string{".pdf"},
		},
		{
			ID: "pdf_merge", Name: "PDF Merge", Type: domain.ServiceTypeConversion,
			Description:    "Combine multiple PDF files into a single document.",
			BasePriceCents: 299, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"pdf", "merge", "combine"}, Icon: "Layers",
			EstimatedTime: "15 seconds", MaxFileSizeMB: 100, SupportedFormats: []string{".pdf"},
		},
		{
			ID: "pdf_split", Name: "PDF Split", Type: domain.ServiceTypeConversion,
			Description:    "Split a PDF into multiple separate documents.",
			BasePriceCents: 249, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"pdf", "split", "separate"}, Icon: "Scissors",
			EstimatedTime: "20 seconds", MaxFileSizeMB: 100, SupportedFormats: []string{".pdf"},
		},
		{
			ID: "pdf_compress", Name: "PDF Compression", Type: domain.ServiceTypeConversion,
			Description:    "Reduce PDF file size while maintaining quality.",
			BasePriceCents: 149, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"pdf", "compress", "reduce", "optimize"}, Icon: "Minimize2",
			EstimatedTime: "30 seconds", MaxFileSizeMB: 100, SupportedFormats: []string{".pdf"},
		},
		{
			ID: "pdf_rotate", Name: "PDF Page Rotation", Type: domain.ServiceTypeConversion,
			Description:    "Rotate pages in your PDF documents.",
			BasePriceCents: 99, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"pdf", "rotate", "orientation"}, Icon: "RotateCw",
			EstimatedTime: "10 seconds", MaxFileSizeMB: 50, SupportedFormats: []string{".pdf"},
		},
		{
			ID: "image_resize", Name: "Image Resize", Type: domain.ServiceTypeConversion,
			Description:    "Resize images to specific dimensions.",
			BasePriceCents: 99, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"image", "resize", "dimensions"}, Icon: "Expand",
			EstimatedTime: "10 seconds", MaxFileSizeMB: 25,
			SupportedFormats: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		},
		{
			ID: "image_compress", Name: "Image Compression", Type: domain.ServiceTypeConversion,
			Description:    "Compress images to reduce file size.",
			BasePriceCents: 99, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"image", "compress", "optimize"}, Icon: "Minimize",
			EstimatedTime: "10 seconds", MaxFileSizeMB: 25,
			SupportedFormats: []string{".jpg", ".jpeg", ".png", ".webp"},
		},
		{
			ID: "pdf_password_protect", Name: "PDF Password Protection", Type: domain.ServiceTypeConversion,
			Description:    "Add password protection to PDF documents.",
			BasePriceCents: 199, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"security", "password", "encrypt", "pdf"}, Icon: "Lock",
			EstimatedTime: "15 seconds", SupportedFormats: []string{".pdf"},
		},
		{
			ID: "watermark_add", Name: "Add Watermark", Type: domain.ServiceTypeConversion,
			Description:    "Add text or image watermarks to documents.",
			BasePriceCents: 199, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"watermark", "branding", "security"}, Icon: "Droplet",
			EstimatedTime: "20 seconds",
		},

		// OCR services
		{
			ID: "ocr_pdf", Name: "OCR for Scanned PDFs", Type: domain.ServiceTypeOCR,
			Description:    "Extract searchable text from scanned PDF documents.",
			BasePriceCents: 399, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"ocr", "pdf", "searchable", "text"}, Icon: "ScanText",
			EstimatedTime: "60 seconds", MaxFileSizeMB: 50, SupportedFormats: []string{".pdf"},
		},
		{
			ID: "ocr_image", Name: "OCR for Images", Type: domain.ServiceTypeOCR,
			Description:    "Extract text from images (JPG, PNG, etc.).",
			BasePriceCents: 349, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"ocr", "image", "text", "extraction"}, Icon: "ScanLine",
			EstimatedTime: "45 seconds", MaxFileSizeMB: 25,
			SupportedFormats: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff"},
		},
		{
			ID: "document_scan_cleanup", Name: "Document Scan Cleanup", Type: domain.ServiceTypeOCR,
			Description:    "Clean, straighten, and enhance scanned documents.",
			BasePriceCents: 249, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"scan", "cleanup", "enhance", "straighten"}, Icon: "Scan",
			EstimatedTime: "30 seconds", MaxFileSizeMB: 25,
			SupportedFormats: []string{".jpg", ".jpeg", ".png", ".pdf"},
		},

		// Fax services
		{
			ID: "fax_domestic", Name: "Domestic Fax", Type: domain.ServiceTypeFax,
			Description:    "Send documents via fax within the United States.",
			BasePriceCents: 499, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"fax", "domestic", "us"}, Icon: "Printer",
			EstimatedTime: "2 minutes", MaxFileSizeMB: 25, SupportedFormats: []string{".pdf"},
			RequiresExtraFields: []string{"fax_number"},
		},
		{
			ID: "fax_international", Name: "International Fax", Type: domain.ServiceTypeFax,
			Description:    "Send documents via fax internationally.",
			BasePriceCents: 999, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"fax", "international", "global"}, Icon: "Globe2",
			EstimatedTime: "3 minutes", MaxFileSizeMB: 25, SupportedFormats: []string{".pdf"},
			RequiresExtraFields: []string{"fax_number", "country_code"},
		},
		{
			ID: "fax_hipaa", Name: "HIPAA-Compliant Fax", Type: domain.ServiceTypeFax,
			Description:    "Secure fax transmission for healthcare documents.",
			BasePriceCents: 799, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"fax", "hipaa", "healthcare", "secure"}, Icon: "ShieldCheck",
			EstimatedTime: "2 minutes", MaxFileSizeMB: 25, SupportedFormats: []string{".pdf"},
			RequiresExtraFields: []string{"fax_number", "recipient_name"},
		},
		{
			ID: "fax_legal", Name: "Legal Document Fax", Type: domain.ServiceTypeFax,
			Description:    "Priority fax service for legal documents with confirmation.",
			BasePriceCents: 699, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"fax", "legal", "court", "priority"}, Icon: "Scale",
			EstimatedTime: "2 minutes", MaxFileSizeMB: 50, SupportedFormats: []string{".pdf"},
			RequiresExtraFields: []string{"fax_number", "case_number"},
		},

		// Shredding services
		{
			ID: "secure_shred_basic", Name: "Secure Document Shredding", Type: domain.ServiceTypeShredding,
			Description:    "Permanently delete documents with destruction certificate.",
			BasePriceCents: 199, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"shred", "delete", "secure", "certificate"}, Icon: "Trash2",
			EstimatedTime: "10 seconds", MaxFileSizeMB: 100,
		},
		{
			ID: "secure_shred_gdpr", Name: "GDPR-Compliant Deletion", Type: domain.ServiceTypeShredding,
			Description:    "Secure deletion meeting GDPR requirements with audit trail.",
			BasePriceCents: 399, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"shred", "gdpr", "compliance", "audit"}, Icon: "ShieldAlert",
			EstimatedTime: "15 seconds", MaxFileSizeMB: 100,
		},
		{
			ID: "secure_shred_hipaa", Name: "HIPAA-Compliant Deletion", Type: domain.ServiceTypeShredding,
			Description:    "Healthcare document destruction with compliance certificate.",
			BasePriceCents: 499, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"shred", "hipaa", "healthcare", "compliance"}, Icon: "HeartPulse",
			EstimatedTime: "15 seconds", MaxFileSizeMB: 100,
		},

		// Bundles
		{
			ID: "emergency_bundle_basic", Name: "Emergency Bundle – Basic", Type: domain.ServiceTypeBundle,
			Description:    "Fast-track processing: OCR + Conversion with priority queue.",
			BasePriceCents: 1499, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"bundle", "emergency", "priority", "fast"}, Icon: "Zap",
			Includes: []string{"pdf_to_word", "ocr_pdf"}, EstimatedTime: "2 minutes",
		},
		{
			ID: "emergency_bundle_pro", Name: "Emergency Bundle – Pro", Type: domain.ServiceTypeBundle,
			Description:    "Complete document processing with OCR, conversion, and cleanup.",
			BasePriceCents: 2999, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"bundle", "emergency", "premium", "complete"}, Icon: "Rocket",
			Includes:      []string{"pdf_to_word", "word_to_pdf", "ocr_pdf", "document_scan_cleanup"},
			EstimatedTime: "3 minutes",
		},
		{
			ID: "legal_bundle", Name: "Legal Document Bundle", Type: domain.ServiceTypeBundle,
			Description:    "Complete legal document preparation: OCR, conversion, secure storage.",
			BasePriceCents: 3999, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"bundle", "legal", "court", "complete"}, Icon: "Gavel",
			Includes:      []string{"ocr_pdf", "pdf_to_word", "pdf_merge", "fax_legal"},
			EstimatedTime: "5 minutes",
		},
		{
			ID: "medical_bundle", Name: "Medical Records Bundle", Type: domain.ServiceTypeBundle,
			Description:    "HIPAA-compliant processing for medical documents.",
			BasePriceCents: 4499, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"bundle", "medical", "hipaa", "healthcare"}, Icon: "Stethoscope",
			Includes:      []string{"ocr_pdf", "pdf_to_word", "fax_hipaa", "secure_shred_hipaa"},
			EstimatedTime: "5 minutes",
		},
		{
			ID: "business_bundle", Name: "Business Document Bundle", Type: domain.ServiceTypeBundle,
			Description:    "Complete business document processing package.",
			BasePriceCents: 2499, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"bundle", "business", "corporate"}, Icon: "Briefcase",
			Includes:      []string{"pdf_to_word", "word_to_pdf", "excel_to_pdf", "pdf_merge"},
			EstimatedTime: "3 minutes",
		},

		// Grievance & legal services
		{
			ID: "grievance_report", Name: "Grievance Report Package", Type: domain.ServiceTypeGrievance,
			Description:    "Structured grievance report preparation and document packaging.",
			BasePriceCents: 1999, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"legal", "grievance", "report", "complaint"}, Icon: "FileWarning",
			EstimatedTime:       "10 minutes",
			RequiresExtraFields: []string{"incident_date", "authority_to_submit", "summary"},
		},
		{
			ID: "grievance_union", Name: "Union Grievance Filing", Type: domain.ServiceTypeGrievance,
			Description:    "Prepare and format union grievance documents.",
			BasePriceCents: 2499, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"legal", "grievance", "union", "labor"}, Icon: "Users",
			EstimatedTime:       "15 minutes",
			RequiresExtraFields: []string{"union_local", "incident_date", "contract_article", "summary"},
		},
		{
			ID: "eeoc_complaint", Name: "EEOC Complaint Prep", Type: domain.ServiceTypeGrievance,
			Description:    "Prepare documents for EEOC discrimination complaints.",
			BasePriceCents: 2999, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"legal", "eeoc", "discrimination", "complaint"}, Icon: "Scale",
			EstimatedTime:       "20 minutes",
			RequiresExtraFields: []string{"incident_date", "discrimination_type", "employer_name", "summary"},
		},
		{
			ID: "foia_request", Name: "FOIA Request Prep", Type: domain.ServiceTypeLegal,
			Description:    "Prepare Freedom of Information Act request documents.",
			BasePriceCents: 1499, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"legal", "foia", "government", "request"}, Icon: "FileSearch",
			EstimatedTime:       "10 minutes",
			RequiresExtraFields: []string{"agency_name", "records_description"},
		},
		{
			ID: "redaction_basic", Name: "Document Redaction", Type: domain.ServiceTypeLegal,
			Description:    "Redact sensitive information from documents.",
			BasePriceCents: 599, Unit: domain.UnitPerPage, Enabled: true,
			Tags: []string{"redaction", "privacy", "sensitive", "legal"}, Icon: "EyeOff",
			EstimatedTime: "1 minute per page",
		},
		{
			ID: "bates_numbering", Name: "Bates Numbering", Type: domain.ServiceTypeLegal,
			Description:    "Apply Bates numbering to legal documents.",
			BasePriceCents: 499, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"legal", "bates", "numbering", "discovery"}, Icon: "Hash",
			EstimatedTime: "30 seconds",
		},

		// Notary services
		{
			ID: "notary_acknowledgment", Name: "Notary Acknowledgment", Type: domain.ServiceTypeNotary,
			Description:    "Remote online notarization for acknowledgments.",
			BasePriceCents: 2499, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"notary", "acknowledgment", "remote", "ron"}, Icon: "Stamp",
			EstimatedTime:       "15 minutes",
			RequiresExtraFields: []string{"signer_name", "document_type"},
		},

		// Medical document services
		{
			ID: "medical_records_request", Name: "Medical Records Request", Type: domain.ServiceTypeMedical,
			Description:    "Prepare HIPAA-compliant medical records request forms.",
			BasePriceCents: 999, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"medical", "hipaa", "records", "request"}, Icon: "ClipboardList",
			EstimatedTime:       "10 minutes",
			RequiresExtraFields: []string{"patient_name", "provider_name", "date_range"},
		},

		// Financial document services
		{
			ID: "tax_document_prep", Name: "Tax Document Organization", Type: domain.ServiceTypeFinancial,
			Description:    "Organize and prepare tax documents for filing.",
			BasePriceCents: 1499, Unit: domain.UnitFlat, Enabled: true,
			Tags: []string{"financial", "tax", "irs", "preparation"}, Icon: "Calculator",
			EstimatedTime: "15 minutes",
		},
		{
			ID: "bank_statement_ocr", Name: "Bank Statement OCR", Type: domain.ServiceTypeFinancial,
			Description:    "Extract transaction data from bank statements.",
			BasePriceCents: 499, Unit: domain.UnitPerFile, Enabled: true,
			Tags: []string{"financial", "bank", "statement", "extraction"}, Icon: "Building",
			EstimatedTime: "30 seconds",
		},
	}
}
