package mail

import (
	"fmt"
	"time"
)

var ptBRMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDatePTBR renders a date as "2 de janeiro de 2026".
func FormatDatePTBR(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), ptBRMonths[t.Month()-1], t.Year())
}

// ActivationMail carries the 4-digit code the user must confirm to
// finish registration.
func ActivationMail(to, name, code string) Message {
	return Message{
		To:      to,
		Subject: "Ative sua conta",
		Body: fmt.Sprintf(
			"Olá %s,\n\nSeu código de ativação é: %s\n\nO código expira em 5 minutos.\n\nEquipe Pensamento Computacional",
			name, code),
	}
}

// QuestionReplyMail notifies the asker that their question received an
// answer.
func QuestionReplyMail(to, name, courseName, sectionTitle string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Sua pergunta foi respondida - %s", sectionTitle),
		Body: fmt.Sprintf(
			"Olá %s,\n\nSua pergunta na aula \"%s\" do curso \"%s\" recebeu uma resposta. Acesse a plataforma para conferir.\n\nEquipe Pensamento Computacional",
			name, sectionTitle, courseName),
	}
}

// OrderConfirmationMail confirms a purchase, echoing a short order
// reference and the pt-BR purchase date.
func OrderConfirmationMail(to, name, orderRef, courseName string, price float64, date time.Time) Message {
	return Message{
		To:      to,
		Subject: "Confirmação do seu pedido",
		Body: fmt.Sprintf(
			"Olá %s,\n\nSeu pedido %s foi confirmado.\n\nCurso: %s\nValor: R$ %.2f\nData: %s\n\nBons estudos!\nEquipe Pensamento Computacional",
			name, orderRef, courseName, price, FormatDatePTBR(date)),
	}
}
