package services

import (
	"bytes"
	"fmt"
	"html/template"

	"ceylon-compass-server/models"
)

var decisionTemplate = template.Must(template.New("decision").Parse(`<h2>{{.Heading}}</h2>
<p>{{.Lead}}</p>
{{- if .Details}}
<h3>{{.Kind}} Details</h3>
<ul>
{{- range .Details}}
  <li><strong>{{.Label}}:</strong> {{.Value}}</li>
{{- end}}
</ul>
{{- end}}
<p>Thank you for contributing to Ceylon Compass.</p>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`<h2>Password Reset</h2>
<p>You requested a password reset for your Ceylon Compass account.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>This link expires in one hour. If you did not request it, ignore this email.</p>
`))

// decisionEmail builds the accepted/rejected email for a moderated submission.
func decisionEmail(to string, kind models.ContentKind, name string, accepted bool, details []models.Detail) (Email, error) {
	verb := "Rejected"
	lead := fmt.Sprintf("Your %s \"%s\" has been rejected.", kind, name)
	text := lead + " Please contact us for more information."
	if accepted {
		verb = "Accepted"
		lead = fmt.Sprintf("Your %s \"%s\" has been accepted!", kind, name)
		text = lead + " You can now see it on our platform."
	}
	subject := fmt.Sprintf("%s Request %s", kind.Title(), verb)

	var html bytes.Buffer
	err := decisionTemplate.Execute(&html, struct {
		Heading string
		Lead    string
		Kind    string
		Details []models.Detail
	}{
		Heading: subject,
		Lead:    text,
		Kind:    kind.Title(),
		Details: details,
	})
	if err != nil {
		return Email{}, fmt.Errorf("render decision email: %w", err)
	}

	return Email{To: to, Subject: subject, Text: text, HTML: html.String()}, nil
}

func resetPasswordEmail(to, link string) (Email, error) {
	var html bytes.Buffer
	if err := resetTemplate.Execute(&html, struct{ Link string }{Link: link}); err != nil {
		return Email{}, fmt.Errorf("render reset email: %w", err)
	}
	return Email{
		To:      to,
		Subject: "Password Reset Request",
		Text: "You requested a password reset. Open the following link within one hour to choose a new password:\n\n" +
			link + "\n\nIf you did not request this, please ignore this email.",
		HTML: html.String(),
	}, nil
}
