package services

import "fmt"

// ErrorCode classifies service failures for transport mapping.
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "not_found"
	CodeForbidden          ErrorCode = "forbidden"
	CodeConflict           ErrorCode = "conflict"
	CodeInvalidReference   ErrorCode = "invalid_reference"
	CodeInvalidCredentials ErrorCode = "invalid_credentials"
	CodeTokenInvalid       ErrorCode = "token_invalid"
	CodeInvalidCode        ErrorCode = "invalid_activation_code"
	CodeSessionExpired     ErrorCode = "session_expired"
	CodeValidation         ErrorCode = "validation"
	CodeInternal           ErrorCode = "internal"
)

// ServiceError carries a classification code plus the user-facing message.
// Messages are in Portuguese because that is what the clients display.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func newError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}

func wrapError(code ErrorCode, message string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: message, Err: err}
}

// Predefined user-facing errors.
var (
	ErrEmailExists        = newError(CodeConflict, "Email já existe")
	ErrUserNotFound       = newError(CodeNotFound, "Usuário não encontrado")
	ErrCourseNotFound     = newError(CodeNotFound, "Curso não encontrado")
	ErrOrderNotFound      = newError(CodeNotFound, "Pedido não encontrado")
	ErrPostNotFound       = newError(CodeNotFound, "Post não encontrado")
	ErrReviewNotFound     = newError(CodeNotFound, "Review não encontrada")
	ErrCourseNotOwned     = newError(CodeForbidden, "Você não tem acesso a este curso.")
	ErrCourseAlreadyOwned = newError(CodeConflict, "Você já comprou este curso")
	ErrSlugTaken          = newError(CodeConflict, "Já existe um post com este título")
	ErrInvalidCredentials = newError(CodeInvalidCredentials, "Email ou senha inválidos")
	ErrInvalidActivation  = newError(CodeInvalidCode, "Código de ativação inválido")
	ErrTokenInvalid       = newError(CodeTokenInvalid, "Token inválido ou expirado")
	ErrSessionExpired     = newError(CodeSessionExpired, "Sessão expirada, faça login novamente")
	ErrInvalidContent     = newError(CodeInvalidReference, "Conteúdo inválido")
	ErrWrongPassword      = newError(CodeInvalidCredentials, "Senha atual incorreta")
	ErrPasswordlessUser   = newError(CodeValidation, "Conta social não possui senha")
)

// NewValidationError wraps validator output into a service error.
func NewValidationError(err error) *ServiceError {
	return wrapError(CodeValidation, "Dados inválidos", err)
}

// NewInternalError hides the cause behind a generic message.
func NewInternalError(err error) *ServiceError {
	return wrapError(CodeInternal, "Erro interno do servidor", err)
}
