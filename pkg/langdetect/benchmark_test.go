package langdetect_test

import (
	"testing"

	"github.com/yaklabco/mdspan/pkg/langdetect"
)

func BenchmarkDetect(b *testing.B) {
	bodies := map[string]string{
		"go":     "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n",
		"python": "def hello():\n    print(\"hi\")\n\nif __name__ == \"__main__\":\n    hello()\n",
		"json":   "{\n  \"name\": \"test\",\n  \"version\": \"1.0.0\"\n}\n",
		"prose":  "hello",
		"empty":  "",
	}

	for name, body := range bodies {
		content := []byte(body)
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				langdetect.Detect(content)
			}
		})
	}
}

func BenchmarkInferFromInfo(b *testing.B) {
	info := []byte("golang title=main.go")
	for b.Loop() {
		langdetect.Infer(info, nil)
	}
}
