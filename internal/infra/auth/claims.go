package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims — полезная нагрузка токена сессии.
// Подпись здесь НЕ проверяется: claims нужны только для UI-гейтинга,
// настоящая граница авторизации на стороне сервера.
type Claims = jwt.MapClaims

// DecodeClaims достает claims из второго сегмента токена header.payload.signature.
// Любая ошибка разбора превращается в (nil, false), наружу ничего не бросается.
func DecodeClaims(token string) (Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}

	raw, err := base64.StdEncoding.DecodeString(urlSafeToStd(parts[1]))
	if err != nil {
		return nil, false
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil || claims == nil {
		return nil, false
	}
	return claims, true
}

// urlSafeToStd переводит base64url в стандартный алфавит и добивает '=' до кратности 4
func urlSafeToStd(seg string) string {
	seg = strings.NewReplacer("-", "+", "_", "/").Replace(seg)
	if pad := len(seg) % 4; pad != 0 {
		seg += strings.Repeat("=", 4-pad)
	}
	return seg
}
