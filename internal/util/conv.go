package util

import (
	"strconv"
)

// MustParseUint converte string para uint, retornando 0 em caso de falha.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
