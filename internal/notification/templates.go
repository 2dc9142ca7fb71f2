package notification

import (
	"bytes"
	"fmt"
	"text/template"

	"go-payroll/internal/events"
)

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

var emailTemplates = map[string]emailTemplate{
	events.EmailTemplatePayrollPaid: {
		subject: mustParse("paid_subject", `Salary credited for {{.period}}`),
		body: mustParse("paid_body", `Hi {{.full_name}},

Your salary for {{.period}} has been processed.

Net pay: {{.currency}} {{.net_salary}}
Transaction: {{.transaction_id}}
Payslip: {{.payslip_url}}
`),
	},
	events.EmailTemplateWelcome: {
		subject: mustParse("welcome_subject", `Welcome aboard, {{.full_name}}`),
		body: mustParse("welcome_body", `Hi {{.full_name}},

Your employee code is {{.employee_code}}. Payslips will be emailed to this address once payroll is paid.
`),
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=zero").Parse(text))
}

// RenderEmail expands a named template with data. Missing keys render empty.
func RenderEmail(name string, data map[string]string) (subject, body string, err error) {
	tpl, ok := emailTemplates[name]
	if !ok {
		return "", "", fmt.Errorf("notification: unknown email template %q", name)
	}

	var sb, bb bytes.Buffer
	if err := tpl.subject.Execute(&sb, data); err != nil {
		return "", "", err
	}
	if err := tpl.body.Execute(&bb, data); err != nil {
		return "", "", err
	}
	return sb.String(), bb.String(), nil
}
