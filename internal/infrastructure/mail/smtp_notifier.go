// Package mail envía avisos por correo con gomail.
package mail

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/cultiva/reponedores-api/internal/application/usecase"
	"github.com/cultiva/reponedores-api/internal/domain/entity"
	"github.com/cultiva/reponedores-api/pkg/config"
)

var _ usecase.ContactNotifier = (*SMTPNotifier)(nil)

// Sender lo que usa el notificador de *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier avisa al equipo comercial de cada mensaje de contacto.
type SMTPNotifier struct {
	sender Sender
	from   string
	to     []string
}

// NewSMTPNotifier construye el notificador; devuelve nil si SMTP no está configurado.
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	if !cfg.Enabled() {
		return nil
	}
	return NewSMTPNotifierWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From, cfg.NotifyTo)
}

// NewSMTPNotifierWithSender permite inyectar el Sender. notifyTo acepta varias direcciones separadas por coma.
func NewSMTPNotifierWithSender(sender Sender, from, notifyTo string) *SMTPNotifier {
	var to []string
	for _, addr := range strings.Split(notifyTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if from == "" && len(to) > 0 {
		from = to[0]
	}
	return &SMTPNotifier{sender: sender, from: from, to: to}
}

// NotifyContact envía el mensaje; Reply-To apunta a quien escribió.
// DialAndSend no recibe contexto, así que se corta la espera al vencer ctx.
func (n *SMTPNotifier) NotifyContact(ctx context.Context, c *entity.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := BuildContactMessage(n.from, n.to, c)
	done := make(chan error, 1)
	go func() { done <- n.sender.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("enviar aviso de contacto: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enviar aviso de contacto: %w", ctx.Err())
	}
}

// BuildContactMessage arma el correo de aviso.
func BuildContactMessage(from string, to []string, c *entity.Contact) *gomail.Message {
	nombre := strings.Join([]string{c.Nombre, c.ApellidoPaterno, c.ApellidoMaterno}, " ")
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetAddressHeader("Reply-To", c.Correo, nombre)
	m.SetHeader("Subject", "Nuevo contacto: "+nombre)

	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", nombre)
	fmt.Fprintf(&b, "Correo: %s\n", c.Correo)
	if c.Telefono != nil {
		fmt.Fprintf(&b, "Teléfono: %s\n", *c.Telefono)
	}
	fmt.Fprintf(&b, "Fecha: %s\n\n", c.FechaCreacion.Format("02-01-2006 15:04"))
	b.WriteString(c.Mensaje)
	m.SetBody("text/plain", b.String())
	return m
}
