package service

import (
	"fmt"

	"budget/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends the monthly report mail.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled reports whether mail delivery is configured.
func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled
}

// SendMonthlyReport mails the summary for (month, year) to the user.
func (s *EmailService) SendMonthlyReport(toEmail, username string, summary *MonthlySummary) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("email service disabled, set email.enabled=true to use it")
	}

	subject := fmt.Sprintf("[Budget] Monthly report %d/%d", summary.Month, summary.Year)
	body := s.generateReportBody(username, summary)

	return s.sendEmail(toEmail, subject, body)
}

func (s *EmailService) generateReportBody(username string, summary *MonthlySummary) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 24px; text-align: center; }
        .content { padding: 30px; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 10px 8px; border-bottom: 1px solid #e5e7eb; color: #333; }
        td.num { text-align: right; font-variant-numeric: tabular-nums; }
        .total td { font-weight: 700; }
        .footer { background: #f8f9fa; padding: 16px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Budget report %d/%d</h1></div>
        <div class="content">
            <p>Hello <strong>%s</strong>, here is your month at a glance:</p>
            <table>
                <tr><td>Income this month</td><td class="num">%d</td></tr>
                <tr><td>Carried over from last month</td><td class="num">%d</td></tr>
                <tr><td>Total income</td><td class="num">%d</td></tr>
                <tr><td>Total expense</td><td class="num">%d</td></tr>
                <tr class="total"><td>Remaining</td><td class="num">%d</td></tr>
                <tr><td>Last month's net</td><td class="num">%d</td></tr>
            </table>
        </div>
        <div class="footer">
            <p>Sent automatically, please do not reply</p>
        </div>
    </div>
</body>
</html>
`,
		summary.Month, summary.Year, username,
		summary.CurrentMonthIncome,
		summary.PreviousMonthAmount,
		summary.TotalIncome,
		summary.TotalExpense,
		summary.Remaining,
		summary.PreviousMonthRemaining,
	)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
