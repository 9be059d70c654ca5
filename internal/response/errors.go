package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Upstream ──────────────────────────────────────────────────────
	ErrUpstreamUnavailable ErrCode = "UPSTREAM_UNAVAILABLE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "La validación falló. Revisa los parámetros enviados."
	case ErrInvalidID:
		return "Formato de ID no válido."
	case ErrNotFound:
		return "Recurso no encontrado."
	case ErrUpstreamUnavailable:
		return "El servicio de datos no está disponible en este momento."
	case ErrRateLimitExceeded:
		return "Demasiadas solicitudes. Inténtalo de nuevo más tarde."
	case ErrInternal:
		return "Se produjo un error interno del servidor."
	default:
		return "Se produjo un error inesperado."
	}
}
