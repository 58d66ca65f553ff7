// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const fence = "```"

var examples = map[Tier]string{
	TierBasic: `# Mi primer documento SimpleDoc

Este es un ejemplo básico que solo incluye títulos y texto plano.

## Sección 1

Este es un párrafo de texto normal.

### Subsección

Otro párrafo con texto simple.`,

	TierIntermediate: `# Mi documento SimpleDoc (Nivel intermedio)

Este ejemplo incluye **texto en negrita** y *texto en cursiva*.

## Listas

- Elemento 1 de lista no ordenada
- Elemento 2
- Elemento 3

## Lista numerada

1. Primer elemento numerado
2. Segundo elemento
3. Tercer elemento`,

	TierAdvanced: `# SimpleDoc Avanzado

Este ejemplo incluye todas las características de SimpleDoc.

## Formato de texto

Texto normal con **negrita** y *cursiva*.

## Enlaces e imágenes

[Enlace a Google](https://www.google.com)

![Logo de ejemplo](https://via.placeholder.com/150)

## Listas

- Elemento 1
- Elemento 2
  
1. Elemento numerado
2. Otro elemento

## Código

` + fence + `
function hola() {
    console.log("Hola mundo");
}
` + fence,
}

// normalized holds the comparison form of each example, built once.
var normalized = func() map[string]Tier {
	m := make(map[string]Tier, len(examples))
	for t, text := range examples {
		m[canonical(text)] = t
	}
	return m
}()

// Example returns the canonical source text for a tier. Out-of-range tiers
// are clamped, so the function is total.
func Example(t Tier) string {
	return examples[t.Clamp()]
}

// IsExample reports whether text is one of the canonical examples,
// unmodified. Line endings and Unicode composition are normalised first.
func IsExample(text string) bool {
	_, ok := normalized[canonical(text)]
	return ok
}

// ShouldRefresh reports whether the editor buffer may be replaced by another
// tier's example without losing user work: it is blank or an unmodified
// example.
func ShouldRefresh(text string) bool {
	return strings.TrimSpace(text) == "" || IsExample(text)
}

func canonical(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return norm.NFC.String(text)
}
