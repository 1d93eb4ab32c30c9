package utils

import (
	"regexp"
	"strings"
)

// vírgula ASCII ou vírgula de largura total (teclado chinês)
var tagSep = regexp.MustCompile(`[,，]`)

// SplitTags quebra o texto livre do formulário em tags, sem espaços e sem vazias.
func SplitTags(raw string) []string {
	out := []string{}
	for _, t := range tagSep.Split(raw, -1) {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
