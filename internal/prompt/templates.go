package prompt

const historyLine = `{{if .NeverContacted}}This is a first touch; we have not spoken before.{{else}}Our last touch was a {{.LastMethod}} on {{.LastDate}}.{{end}}`

var builtinTemplates = map[string][2]string{
	GenericKey: {
		`Following up with {{.AccountName}}`,
		`Write a short, friendly outreach email to {{.FirstName}}{{if .Title}} ({{.Title}}){{end}} at {{.AccountName}} about {{.Product}}.
` + historyLine + `
Ask for a 20-minute conversation next week. Keep it under 120 words and avoid jargon.`,
	},
	"telemetry": {
		`Remote telemetry capacity at {{.AccountName}}`,
		`Write a concise email to {{.FirstName}}{{if .Title}} ({{.Title}}){{end}} at {{.AccountName}}.
` + historyLine + `
Focus on how centralized telemetry monitoring frees step-down beds and reduces alarm fatigue for nursing staff.
Close by offering a brief call to review their current monitored-bed count. Under 120 words.`,
	},
	"nurse call": {
		`Nurse call response times at {{.AccountName}}`,
		`Write a concise email to {{.FirstName}}{{if .Title}} ({{.Title}}){{end}} at {{.AccountName}}.
` + historyLine + `
Focus on shortening call-light response times and routing requests to the right caregiver's device.
Suggest a short walkthrough with their nursing leadership. Under 120 words.`,
	},
	"rtls": {
		`Asset visibility at {{.AccountName}}`,
		`Write a concise email to {{.FirstName}}{{if .Title}} ({{.Title}}){{end}} at {{.AccountName}}.
` + historyLine + `
Focus on real-time location of infusion pumps and beds, and the hours staff spend searching for equipment.
Offer to share a short utilization study from a similar health system. Under 120 words.`,
	},
	"virtual nursing": {
		`Virtual nursing at {{.AccountName}}`,
		`Write a concise email to {{.FirstName}}{{if .Title}} ({{.Title}}){{end}} at {{.AccountName}}.
` + historyLine + `
Focus on supporting bedside nurses with remote admission and discharge documentation.
Ask whether a pilot unit is being considered this year. Under 120 words.`,
	},
}
