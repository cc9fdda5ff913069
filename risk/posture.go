package risk

// Answer values accepted by the posture questionnaire.
const (
	AnswerYes     = "si"
	AnswerPartial = "parziale"
	AnswerNo      = "no"
	AnswerUnknown = "non-so"
)

// Questionnaire is the lead-generation security self-assessment.
type Questionnaire struct {
	CompanyName     string `json:"companyName"`
	Sector          string `json:"sector"`
	Employees       string `json:"employees"`
	Email           string `json:"email"`
	ContactName     string `json:"contactName"`
	Website         string `json:"website"`
	HasFirewall     string `json:"hasFirewall"`
	HasBackup       string `json:"hasBackup"`
	HasAntivirus    string `json:"hasAntivirus"`
	HasTraining     string `json:"hasTraining"`
	HasMFA          string `json:"hasMFA"`
	HasIncidentPlan string `json:"hasIncidentPlan"`
}

// Control is a single answered security control.
type Control struct {
	Label  string `json:"label"`
	Answer string `json:"answer"`
}

// Controls lists the six security controls in questionnaire order.
func (q Questionnaire) Controls() []Control {
	return []Control{
		{Label: "Firewall Aziendale", Answer: q.HasFirewall},
		{Label: "Backup Regolari", Answer: q.HasBackup},
		{Label: "Antivirus Enterprise", Answer: q.HasAntivirus},
		{Label: "Formazione Cybersecurity", Answer: q.HasTraining},
		{Label: "Autenticazione MFA", Answer: q.HasMFA},
		{Label: "Piano Risposta Incidenti", Answer: q.HasIncidentPlan},
	}
}

// QuestionnaireSteps is the number of steps in the questionnaire.
const QuestionnaireSteps = 4

// StepComplete reports whether every field required by step is filled.
// Steps past the third all check the last group of controls.
func (q Questionnaire) StepComplete(step int) bool {
	switch step {
	case 1:
		return q.CompanyName != "" && q.Sector != "" && q.Employees != ""
	case 2:
		return q.Email != "" && q.ContactName != ""
	case 3:
		return q.HasFirewall != "" && q.HasBackup != "" && q.HasAntivirus != ""
	default:
		return q.HasTraining != "" && q.HasMFA != "" && q.HasIncidentPlan != ""
	}
}

// Complete reports whether all questionnaire steps are filled.
func (q Questionnaire) Complete() bool {
	for step := 1; step <= QuestionnaireSteps; step++ {
		if !q.StepComplete(step) {
			return false
		}
	}
	return true
}

// PostureReport is the self-assessment result. Unlike Assessment, a higher
// score here means a stronger security posture.
type PostureReport struct {
	Score    int       `json:"score"`
	Label    string    `json:"label"`
	Critical []Control `json:"critical"`
	Warnings []Control `json:"warnings"`
}

var employeeBonus = map[string]int{
	"1-10":   5,
	"11-50":  8,
	"51-200": 10,
	"200+":   10,
}

const (
	pointsControlYes     = 15
	pointsControlPartial = 8

	postureGoodMin   = 70
	postureMediumMin = 40
)

// ScorePosture scores a questionnaire.
func ScorePosture(q Questionnaire) PostureReport {
	score := 0
	critical := []Control{}
	warnings := []Control{}

	for _, c := range q.Controls() {
		switch c.Answer {
		case AnswerYes:
			score += pointsControlYes
		case AnswerPartial:
			score += pointsControlPartial
			warnings = append(warnings, c)
		case AnswerNo, AnswerUnknown:
			critical = append(critical, c)
		}
	}
	score += employeeBonus[q.Employees]
	score = min(score, 100)

	return PostureReport{
		Score:    score,
		Label:    postureLabel(score),
		Critical: critical,
		Warnings: warnings,
	}
}

func postureLabel(score int) string {
	switch {
	case score >= postureGoodMin:
		return "Buono"
	case score >= postureMediumMin:
		return "Medio"
	default:
		return "Critico"
	}
}
