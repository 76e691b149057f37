package codegen

import (
	"fmt"
	"strings"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

// fallbackComponentCap keeps the placeholder document short; the fallback is
// not expected to be visually faithful.
const fallbackComponentCap = 5

// GenerateFallback deterministically renders a minimal-but-valid document for
// the target framework using only the structural analysis. It never returns
// an empty string, even for an analysis with zero components.
func GenerateFallback(combined *domain.CombinedAnalysis, framework string) string {
	fileName := combined.Meta.FileName
	if fileName == "" {
		fileName = "Figma Design"
	}

	var colors []string
	var components []domain.ComponentAnalysis
	if combined.Figma != nil {
		colors = combined.Figma.Colors
		components = combined.Figma.Components
	}
	if len(components) > fallbackComponentCap {
		components = components[:fallbackComponentCap]
	}

	switch framework {
	case domain.FrameworkReact:
		return fallbackReact(fileName, len(components))
	case domain.FrameworkVue:
		return fallbackVue(fileName, len(components))
	case domain.FrameworkSvelte:
		return fallbackSvelte(fileName, len(components))
	default:
		return fallbackHTML(fileName, colors, components)
	}
}

func fallbackHTML(fileName string, colors []string, components []domain.ComponentAnalysis) string {
	var tokens strings.Builder
	for i, c := range colors {
		fmt.Fprintf(&tokens, "      --color-%d: %s;\n", i+1, c)
	}

	var cards strings.Builder
	for _, c := range components {
		fmt.Fprintf(&cards, `      <div class="bg-white p-6 rounded-lg shadow">
        <h2 class="text-xl font-semibold mb-2">%s</h2>
        <p class="text-gray-600">Component type: %s</p>
      </div>
`, c.Name, c.Type)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <script src="https://cdn.tailwindcss.com"></script>
  <style>
    /* Design tokens from Figma */
    :root {
%s    }
  </style>
</head>
<body class="bg-gray-50">
  <div class="container mx-auto px-4 py-8">
    <h1 class="text-4xl font-bold mb-8">%s</h1>
    <div class="grid gap-6">
%s    </div>
    <p class="mt-8 text-sm text-gray-500">
      Generated from Figma. Add CLAUDE_API_KEY for production-ready code.
    </p>
  </div>
</body>
</html>`, fileName, tokens.String(), fileName, cards.String())
}

func fallbackReact(fileName string, componentCount int) string {
	return fmt.Sprintf(`// Code generation requires CLAUDE_API_KEY for production-ready output.

export default function Component() {
  return (
    <div className="p-8">
      <h1 className="text-4xl font-bold">%s</h1>
      <p className="text-gray-600 mt-4">
        Figma design with %d components
      </p>
    </div>
  )
}`, fileName, componentCount)
}

func fallbackVue(fileName string, componentCount int) string {
	return fmt.Sprintf(`<!-- Code generation requires CLAUDE_API_KEY for production-ready output. -->
<script setup lang="ts">
const fileName = %q
const componentCount = %d
</script>

<template>
  <div class="p-8">
    <h1 class="text-4xl font-bold">{{ fileName }}</h1>
    <p class="text-gray-600 mt-4">Figma design with {{ componentCount }} components</p>
  </div>
</template>`, fileName, componentCount)
}

func fallbackSvelte(fileName string, componentCount int) string {
	return fmt.Sprintf(`<!-- Code generation requires CLAUDE_API_KEY for production-ready output. -->
<script lang="ts">
  const fileName = %q
  const componentCount = %d
</script>

<div class="p-8">
  <h1 class="text-4xl font-bold">{fileName}</h1>
  <p class="text-gray-600 mt-4">Figma design with {componentCount} components</p>
</div>`, fileName, componentCount)
}

// MockCode is the canned, clearly-labeled document returned on the mock
// branch, when the Figma integration itself is not configured.
func MockCode(framework string) string {
	if framework == domain.FrameworkHTML {
		return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Figma Design - Mock Mode</title>
  <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gradient-to-br from-purple-50 to-blue-50 min-h-screen">
  <div class="container mx-auto px-6 py-12">
    <div class="bg-white rounded-2xl shadow-xl p-8 max-w-4xl mx-auto">
      <div class="text-center mb-8">
        <h1 class="text-3xl font-bold text-gray-900 mb-2">Figma to Code - Mock Mode</h1>
        <p class="text-gray-600">Add FIGMA_ACCESS_TOKEN to the environment for real conversion</p>
      </div>
      <div class="space-y-4">
        <div class="bg-purple-50 border border-purple-200 rounded-lg p-4">
          <h3 class="font-semibold text-purple-900 mb-2">What This Will Do:</h3>
          <ul class="text-purple-800 space-y-1 text-sm">
            <li>Extract complete Figma design structure</li>
            <li>Analyze colors, typography, spacing, components</li>
            <li>Generate pixel-perfect production code</li>
            <li>Support HTML, React, Vue, Svelte</li>
          </ul>
        </div>
        <div class="bg-blue-50 border border-blue-200 rounded-lg p-4">
          <h3 class="font-semibold text-blue-900 mb-2">Setup Required:</h3>
          <pre class="bg-blue-900 text-blue-100 p-3 rounded text-xs overflow-x-auto">FIGMA_ACCESS_TOKEN=your_figma_token_here
OPENAI_API_KEY=your_openai_key (optional)
CLAUDE_API_KEY=your_claude_key</pre>
        </div>
      </div>
    </div>
  </div>
</body>
</html>`
	}

	return fmt.Sprintf(`// Mock Figma to Code (%s)
// Add FIGMA_ACCESS_TOKEN to the environment for real conversion

export default function MockFigmaDesign() {
  return (
    <div className="min-h-screen bg-gradient-to-br from-purple-50 to-blue-50 p-8">
      <div className="max-w-4xl mx-auto bg-white rounded-2xl shadow-xl p-8">
        <h1 className="text-3xl font-bold mb-4">Figma to Code - Mock Mode</h1>
        <p className="text-gray-600 mb-6">
          Add FIGMA_ACCESS_TOKEN to the environment for real conversion
        </p>
      </div>
    </div>
  )
}`, framework)
}
