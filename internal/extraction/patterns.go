package extraction

import (
	"regexp"
	"strings"
)

// Known-name batteries. Matching against source text is case-insensitive;
// entries are written in their display casing, which is what a term gets
// when the source text casing is unusable (it is not — first-seen source
// casing always wins, these are only the search keys).

// technologyNames lists tools and technologies commonly named in resumes
// and job postings.
var technologyNames = []string{
	"Power BI", "Tableau", "Excel", "SQL", "Python", "R", "SAS", "SPSS",
	"Access", "VBA", "Google Analytics", "Looker", "Snowflake", "Alteryx",
	"SharePoint", "Smartsheet", "Jira", "Confluence", "Asana", "Trello",
	"QuickBooks", "ADP", "Workday", "Salesforce", "HubSpot", "Zendesk",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "Linux",
	"JavaScript", "TypeScript", "Java", "Go", "C#", "C++", "MATLAB",
	"Power Automate", "Power Apps", "Visio", "AutoCAD", "Figma",
}

// systemNames lists enterprise systems and platform families.
var systemNames = []string{
	"SAP", "Oracle", "PeopleSoft", "NetSuite", "ServiceNow", "Epic",
	"Cerner", "Meditech", "Banner", "Ellucian", "Costpoint", "Deltek",
	"JD Edwards", "Dynamics 365", "Concur", "Coupa", "Ariba", "Kronos",
	"UKG", "Paycom", "Paylocity", "Taleo", "iCIMS", "Greenhouse",
	"ERP", "CRM", "EHR", "EMR", "HRIS", "ATS", "CMS", "LMS", "POS",
	"SCADA", "MES", "PLM", "WMS", "TMS",
}

// processPhrases lists methodology and process terms.
var processPhrases = []string{
	"Agile", "Scrum", "Kanban", "Waterfall", "Lean", "Six Sigma",
	"Lean Six Sigma", "Kaizen", "DevOps", "ITIL",
	"project management", "program management", "change management",
	"process improvement", "continuous improvement", "quality assurance",
	"quality control", "risk management", "vendor management",
	"stakeholder management", "strategic planning", "budget management",
	"data analysis", "root cause analysis", "gap analysis",
	"requirements gathering", "business analysis", "forecasting",
	"performance management", "incident management", "release management",
}

// certificationNames lists credential acronyms and titles.
var certificationNames = []string{
	"PMP", "CAPM", "PMI-ACP", "CSM", "PSM", "SAFe",
	"CPA", "CFA", "CIA", "CISA", "CISSP", "CISM", "CompTIA Security+",
	"CCNA", "CCNP", "AWS Certified", "Azure Certified",
	"SHRM-CP", "SHRM-SCP", "PHR", "SPHR", "CEBS",
	"RN", "BLS", "ACLS", "PALS", "CNA", "LPN",
	"OSHA", "HAZWOPER", "ServSafe", "CDL",
	"Series 7", "Series 63", "Series 65",
}

// domainPhrases lists domain-of-practice compound phrases.
var domainPhrases = []string{
	"supply chain", "logistics", "procurement", "inventory management",
	"financial reporting", "financial analysis", "accounts payable",
	"accounts receivable", "general ledger", "month-end close", "payroll",
	"revenue cycle", "claims processing", "utilization review",
	"patient care", "clinical documentation", "care coordination",
	"human resources", "talent acquisition", "employee relations",
	"benefits administration", "onboarding", "workforce planning",
	"customer service", "account management", "business development",
	"contract negotiation", "regulatory compliance", "internal audit",
	"grant writing", "fundraising", "curriculum development",
	"data governance", "data visualization", "machine learning",
	"information security", "network administration", "help desk",
}

// knownTechnicalWords indexes the technology and system batteries by
// lowercase word for quick membership checks.
var knownTechnicalWords = func() map[string]bool {
	words := make(map[string]bool)
	for _, list := range [][]string{technologyNames, systemNames} {
		for _, name := range list {
			words[strings.ToLower(name)] = true
		}
	}
	return words
}()

// IsKnownTechnical reports whether the term appears in the technology or
// system batteries. The matcher uses this to weight candidate phrases.
func IsKnownTechnical(term string) bool {
	return knownTechnicalWords[strings.ToLower(strings.TrimSpace(term))]
}

// certificationPhrasePattern catches free-form credential phrases such as
// "certified project manager" or "licensed practical nurse".
var certificationPhrasePattern = regexp.MustCompile(
	`(?i)\b((?:certified|licensed|registered|accredited)\s+[a-z]+(?:\s+[a-z]+){0,2}|[a-z]+(?:\s+[a-z]+){0,2}\s+certification)\b`)

// acronymPattern catches standalone uppercase acronyms (2-6 letters,
// optionally with a digit, e.g. S3, ISO9001 is too long) not already in a
// known-name battery.
var acronymPattern = regexp.MustCompile(`\b[A-Z][A-Z0-9]{1,5}\b`)

// acronymStopwords are common uppercase words that are not skills.
var acronymStopwords = map[string]bool{
	"AND": true, "THE": true, "FOR": true, "WITH": true, "NOT": true,
	"ALL": true, "NEW": true, "USA": true, "PDF": true, "FAQ": true,
	"II": true, "III": true, "IV": true, "AM": true, "PM": true,
	"BS": true, "BA": true, "MS": true, "MA": true, "GPA": true,
}
