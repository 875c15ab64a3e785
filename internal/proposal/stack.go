package proposal

import "github.com/yadhurtech/leadquote/internal/entity"

const (
	SoftwareWeb      = "Web Application"
	SoftwareMobile   = "Mobile Application"
	SoftwareSaaS     = "SaaS Platform"
	SoftwareCommerce = "E-commerce"
	SoftwareCRMERP   = "CRM / ERP"
	SoftwareCustom   = "Custom"
)

const DefaultPaymentTerms = "40% advance, 40% mid-milestone, 20% on delivery"

var SoftwareTypes = []string{
	SoftwareWeb, SoftwareMobile, SoftwareSaaS, SoftwareCommerce, SoftwareCRMERP, SoftwareCustom,
}

var ServiceTypes = []string{
	"Android App", "iOS App", "PWA", "Website", "Web Application",
	"Backend/API", "Admin Panel", "Desktop App", "Automation/Workflow", "Other",
}

var stackByType = map[string][]entity.StackItem{
	SoftwareWeb: {
		{Layer: "Frontend", Technology: "Next.js + TypeScript"},
		{Layer: "Backend", Technology: "Node.js + Express/NestJS"},
		{Layer: "Database", Technology: "PostgreSQL"},
		{Layer: "Hosting", Technology: "Vercel / AWS"},
		{Layer: "Auth", Technology: "JWT / OAuth"},
	},
	SoftwareMobile: {
		{Layer: "Mobile", Technology: "React Native / Flutter"},
		{Layer: "Backend", Technology: "Node.js / Django"},
		{Layer: "Database", Technology: "PostgreSQL / Firebase"},
		{Layer: "Notifications", Technology: "FCM / APNS"},
		{Layer: "Hosting", Technology: "AWS / GCP"},
	},
	SoftwareSaaS: {
		{Layer: "Frontend", Technology: "Next.js + TypeScript"},
		{Layer: "Backend", Technology: "Node.js / Go microservices"},
		{Layer: "Database", Technology: "PostgreSQL + Redis"},
		{Layer: "Infra", Technology: "Docker + Kubernetes"},
		{Layer: "Analytics", Technology: "Metabase / Mixpanel"},
	},
	SoftwareCommerce: {
		{Layer: "Storefront", Technology: "Next.js / Shopify Headless"},
		{Layer: "Backend", Technology: "Node.js Commerce APIs"},
		{Layer: "Database", Technology: "PostgreSQL"},
		{Layer: "Payments", Technology: "Stripe / Razorpay"},
		{Layer: "Hosting", Technology: "Vercel / AWS"},
	},
	SoftwareCRMERP: {
		{Layer: "Frontend", Technology: "Next.js + TypeScript"},
		{Layer: "Backend", Technology: "Node.js / .NET Core"},
		{Layer: "Database", Technology: "PostgreSQL / MSSQL"},
		{Layer: "Automation", Technology: "Queue workers + cron jobs"},
		{Layer: "Reporting", Technology: "BI dashboards"},
	},
	SoftwareCustom: {
		{Layer: "Frontend", Technology: "Framework based on requirements"},
		{Layer: "Backend", Technology: "Service architecture by scope"},
		{Layer: "Database", Technology: "SQL/NoSQL as needed"},
		{Layer: "Infra", Technology: "Cloud deployment with CI/CD"},
		{Layer: "Security", Technology: "Role-based access + audit logs"},
	},
}

// StackFor returns the recommended stack for a software type. Unknown types
// get the Custom stack.
func StackFor(softwareType string) []entity.StackItem {
	stack, ok := stackByType[softwareType]
	if !ok {
		stack = stackByType[SoftwareCustom]
	}
	return append([]entity.StackItem(nil), stack...)
}

// DefaultInput is the intake form as it is first presented.
func DefaultInput() entity.ProposalInput {
	return entity.ProposalInput{
		SoftwareType:  SoftwareWeb,
		ServiceTypes:  []string{},
		PaymentTerms:  DefaultPaymentTerms,
		TimelineWeeks: 12,
		Budget:        12000,
	}
}
