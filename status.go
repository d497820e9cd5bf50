package rangka

// Family is the broad error category a response status code belongs to.
type Family int

const (
	// FamilyGeneric is the fallback for status codes without a dedicated
	// variant in the mapping table.
	FamilyGeneric Family = iota
	FamilyRedirection
	FamilyClientError
	FamilyServerError
)

func (f Family) String() string {
	switch f {
	case FamilyRedirection:
		return "Redirection"
	case FamilyClientError:
		return "ClientError"
	case FamilyServerError:
		return "ServerError"
	default:
		return "HTTPError"
	}
}

type statusVariant struct {
	name   string
	family Family
}

// statusVariants maps every standard 3xx/4xx/5xx status code to a distinct
// named variant and its family.
var statusVariants = map[int]statusVariant{
	// 3xx
	300: {"MultipleChoices", FamilyRedirection},
	301: {"MovedPermanently", FamilyRedirection},
	302: {"Found", FamilyRedirection},
	303: {"SeeOther", FamilyRedirection},
	304: {"NotModified", FamilyRedirection},
	305: {"UseProxy", FamilyRedirection},
	306: {"Reserved", FamilyRedirection},
	307: {"TemporaryRedirect", FamilyRedirection},
	308: {"PermanentRedirect", FamilyRedirection},
	// 4xx
	400: {"BadRequest", FamilyClientError},
	401: {"Unauthorized", FamilyClientError},
	402: {"PaymentRequired", FamilyClientError},
	403: {"Forbidden", FamilyClientError},
	404: {"NotFound", FamilyClientError},
	405: {"MethodNotAllowed", FamilyClientError},
	406: {"NotAcceptable", FamilyClientError},
	407: {"ProxyAuthenticationRequired", FamilyClientError},
	408: {"RequestTimeout", FamilyClientError},
	409: {"Conflict", FamilyClientError},
	410: {"Gone", FamilyClientError},
	411: {"LengthRequired", FamilyClientError},
	412: {"PreconditionFailed", FamilyClientError},
	413: {"RequestEntityTooLarge", FamilyClientError},
	414: {"RequestURITooLong", FamilyClientError},
	415: {"UnsupportedMediaType", FamilyClientError},
	416: {"RequestedRangeNotSatisfiable", FamilyClientError},
	417: {"ExpectationFailed", FamilyClientError},
	418: {"ImATeapot", FamilyClientError},
	421: {"MisdirectedRequest", FamilyClientError},
	422: {"UnprocessableEntity", FamilyClientError},
	423: {"Locked", FamilyClientError},
	424: {"FailedDependency", FamilyClientError},
	425: {"TooEarly", FamilyClientError},
	426: {"UpgradeRequired", FamilyClientError},
	428: {"PreconditionRequired", FamilyClientError},
	429: {"TooManyRequests", FamilyClientError},
	431: {"RequestHeaderFieldsTooLarge", FamilyClientError},
	451: {"UnavailableForLegalReasons", FamilyClientError},
	// 5xx
	500: {"InternalServerError", FamilyServerError},
	501: {"NotImplemented", FamilyServerError},
	502: {"BadGateway", FamilyServerError},
	503: {"ServiceUnavailable", FamilyServerError},
	504: {"GatewayTimeout", FamilyServerError},
	505: {"HTTPVersionNotSupported", FamilyServerError},
	506: {"VariantAlsoNegotiates", FamilyServerError},
	507: {"InsufficientStorage", FamilyServerError},
	508: {"LoopDetected", FamilyServerError},
	510: {"NotExtended", FamilyServerError},
	511: {"NetworkAuthenticationRequired", FamilyServerError},
}

// VariantFor resolves a status code to its variant name and family.
// Unmapped codes fall back to the generic family with an empty name.
func VariantFor(code int) (string, Family) {
	v, ok := statusVariants[code]
	if !ok {
		return "", FamilyGeneric
	}
	return v.name, v.family
}
