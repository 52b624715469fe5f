// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"garment-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Category     string
	Description  string
	Timeout      string
	InputFields  string
	OutputFields string
	InputSchema  string
}

// goTypeFromJSONType maps JSON schema types to Go types. Nullable unions
// such as ["string","null"] use the non-null member.
func goTypeFromJSONType(jsonType interface{}) string {
	if types, ok := jsonType.([]interface{}); ok {
		for _, t := range types {
			if s, ok := t.(string); ok && s != "null" {
				return goTypeFromJSONType(s)
			}
		}
		return "interface{}"
	}

	switch jsonType {
	case "string":
		return "string"
	case "number":
		return "float64"
	case "integer":
		return "int"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// fieldName turns a JSON property such as imageUrl or garment_type into an
// exported Go identifier.
func fieldName(prop string) string {
	parts := strings.FieldsFunc(prop, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	name := strings.Join(parts, "")
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	if strings.HasSuffix(name, "Url") {
		name = strings.TrimSuffix(name, "Url") + "URL"
	}
	return name
}

// structFields renders struct fields for the properties of a JSON schema
// object, sorted by property name.
func structFields(schema map[string]interface{}) string {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if req, ok := schema["required"].([]interface{}); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		tag := name
		if !required[name] {
			tag += ",omitempty"
		}
		lines = append(lines, fmt.Sprintf("\t%s %s `json:%q`", fieldName(name), goTypeFromJSONType(details["type"]), tag))
	}
	return strings.Join(lines, "\n")
}

const configTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	timeout, err := time.ParseDuration("{{ .Timeout }}")
	if err != nil {
		timeout = 10 * time.Second
	}
	return &Config{
		Timeout: timeout,
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{ .InputFields }}
}

type Output struct {
{{ .OutputFields }}
}
`

const handlerTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"

	"garment-workers/internal/common/logger"
	"garment-workers/internal/common/validation"
	"garment-workers/internal/workers/design/jobs"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

var inputSchema = mustSchema(` + "`{{ .InputSchema }}`" + `)

func mustSchema(raw string) validation.JSONSchema {
	s, err := validation.GetSchemaFromJSON(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Handler implements {{ .Name }}: {{ .Description }}
type Handler struct {
	config    *Config
	responder *jobs.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:    config,
		responder: jobs.NewResponder(TaskType, log),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := h.responder.Start(job)

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := jobs.Decode(job, inputSchema, &input); err != nil {
		h.responder.Fail(ctx, client, job, timer, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Fail(ctx, client, job, timer, err)
		return
	}

	h.responder.Complete(ctx, client, job, timer, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`

const testTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"garment-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, out)
}
`

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., design.garment.extract)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator --activity <id> --output <dir> [--registry <path>]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/worker-generator --activity design.garment.check")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	dir, err := generate(reg, *activity, *outputDir, os.Stdout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nWorker scaffold generated at: %s\n", dir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute in handler.go\n")
	fmt.Printf("  2. Write tests in handler_test.go\n")
	fmt.Printf("  3. Register the worker in cmd/worker-manager/main.go\n")
	fmt.Printf("  4. Add configuration to configs/config.yaml\n")
}

// generate writes the scaffold for activityID under outputDir and returns
// the worker directory. Existing files are never overwritten.
func generate(reg *registry.ActivityRegistry, activityID, outputDir string, out io.Writer) (string, error) {
	var found *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == activityID {
			found = &reg.Activities[i]
			break
		}
	}
	if found == nil {
		return "", fmt.Errorf("activity %q not found in registry", activityID)
	}

	timeout, err := found.TimeoutDuration()
	if err != nil {
		return "", err
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	schemaJSON, err := json.Marshal(found.InputSchema)
	if err != nil {
		return "", fmt.Errorf("marshal input schema: %w", err)
	}

	data := WorkerData{
		Name:         found.DisplayName,
		PackageName:  strings.ReplaceAll(found.TaskType, "-", ""),
		TaskType:     found.TaskType,
		Category:     strings.ToLower(found.Category),
		Description:  found.Description,
		Timeout:      timeout.String(),
		InputFields:  structFields(found.InputSchema),
		OutputFields: structFields(found.OutputSchema),
		InputSchema:  string(schemaJSON),
	}

	workerDir := filepath.Join(outputDir, data.Category, found.TaskType)
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	templates := []struct{ file, body string }{
		{"config.go", configTemplate},
		{"models.go", modelsTemplate},
		{"handler.go", handlerTemplate},
		{"handler_test.go", testTemplate},
	}
	for _, t := range templates {
		path := filepath.Join(workerDir, t.file)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "skipped %s (exists)\n", path)
			continue
		}

		src, err := render(t.file, t.body, data)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "generated %s\n", path)
	}
	return workerDir, nil
}

func render(name, body string, data WorkerData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}
