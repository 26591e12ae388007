package mailer

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Zandino/Deltapp/internal/config"
)

type Attachment struct {
	Filename string
	Path     string
}

type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
	SendWelcome(ctx context.Context, to, name, password string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTP(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient is required")
	}

	body, err := buildMIME(m.cfg.From, msg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, body); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name, password string) error {
	html := fmt.Sprintf(`<h1>Bienvenue sur DeltAPP</h1>
<p>Bonjour %s,</p>
<p>Votre compte a été créé avec succès. Voici vos identifiants de connexion :</p>
<ul><li>Email : %s</li><li>Mot de passe : %s</li></ul>
<p>Pour des raisons de sécurité, nous vous recommandons de changer votre mot de passe lors de votre première connexion.</p>`,
		name, to, password)
	return m.Send(ctx, Message{To: to, Subject: "Bienvenue sur DeltAPP", HTML: html})
}

const boundary = "deltapp-mixed"

func buildMIME(from string, msg Message) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if len(msg.Attachments) == 0 {
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(msg.HTML)
		return []byte(b.String()), nil
	}

	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(msg.HTML)
	b.WriteString("\r\n")

	for _, attachment := range msg.Attachments {
		data, err := os.ReadFile(attachment.Path)
		if err != nil {
			return nil, fmt.Errorf("read attachment %s: %w", attachment.Path, err)
		}
		name := attachment.Filename
		if name == "" {
			name = filepath.Base(attachment.Path)
		}
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: application/octet-stream; name=%q\r\n", name)
		fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n", name)
		b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
		b.WriteString(base64.StdEncoding.EncodeToString(data))
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String()), nil
}

// ConsoleMailer logs instead of sending, for local development.
type ConsoleMailer struct {
	log zerolog.Logger
}

func NewConsole(log zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{log: log}
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("dev email")
	return nil
}

func (m *ConsoleMailer) SendWelcome(_ context.Context, to, name, _ string) error {
	m.log.Info().Str("to", to).Str("name", name).Msg("dev welcome email")
	return nil
}
