package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(to, subject, message string) error
}

type Params struct {
	User       string
	Password   string
	Host       string
	Port       string
	From       string
	TLSEnabled bool
}

func Connect(params Params) error {
	Instance = &impl{
		params: params,
	}
	return nil
}

type impl struct {
	params Params
}

func (i impl) IsConfigured() bool {
	return i.params.User != "" && i.params.Host != "" && i.params.Port != ""
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.WithField("recipient", to)
	if !i.IsConfigured() {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	from := i.params.From
	if from == "" {
		from = i.params.User
	}
	auth := sasl.NewPlainClient("", i.params.User, i.params.Password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	body := strings.NewReader(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Recrutement - %s\r\n%s\r\n%s\r\n", from, to, subject, mimeHeaders, message))

	addr := i.params.Host + ":" + i.params.Port
	if i.params.TLSEnabled {
		err = smtp.SendMailTLS(addr, auth, from, []string{to}, body)
	} else {
		err = smtp.SendMail(addr, auth, from, []string{to}, body)
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}
