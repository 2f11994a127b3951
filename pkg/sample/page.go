package sample

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTitle is the heading rendered above the version line.
	DefaultTitle = "AWS Serverless Deployment Sample"
	// ContentType of every response.
	ContentType = "text/html; charset=utf-8"
)

// Version is the marker rendered into the page when none is configured.
// Release builds set it with
// `-ldflags "-X github.com/asecurityteam/deploysample/pkg/sample.Version=2_4_13"`.
var Version = "2_3_6"

var bodyTemplate = template.Must(template.New("page").Parse(
	`{{if .ShowTitle}}<h1>{{.Title}}</h1>{{end}}<h2>안녕하세요, 현재 버전은 {{.Version}}입니다.</h2>`,
))

// Response is the API Gateway proxy response returned by the function.
type Response = events.APIGatewayProxyResponse

// PageConfig controls the rendered page. Version is restricted to
// printable ASCII without HTML metacharacters so it appears verbatim in
// the body.
type PageConfig struct {
	Title     string `description:"Heading rendered above the version line." validate:"max=256"`
	ShowTitle bool   `description:"Render the title heading."`
	Version   string `description:"Version marker embedded in the page body." validate:"required,max=64,printascii,excludesall=<>&+'\""`
}

// Name of the config root.
func (*PageConfig) Name() string {
	return "page"
}

// PageComponent renders a Page from settings.
type PageComponent struct{}

// NewPageComponent is here for symmetry with the other components.
func NewPageComponent() *PageComponent {
	return &PageComponent{}
}

// Settings generates a config populated with defaults.
func (*PageComponent) Settings() *PageConfig {
	return &PageConfig{
		Title:     DefaultTitle,
		ShowTitle: true,
		Version:   Version,
	}
}

// New validates the config and renders the page body once.
func (*PageComponent) New(_ context.Context, conf *PageConfig) (*Page, error) {
	if err := validator.New().Struct(conf); err != nil {
		return nil, err
	}
	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, conf); err != nil {
		return nil, err
	}
	return &Page{version: conf.Version, body: body.String()}, nil
}

// Page is an immutable rendered page. It is safe for concurrent use.
type Page struct {
	version string
	body    string
}

// NewPage renders a page with the default config and the given version.
func NewPage(version string) (*Page, error) {
	c := NewPageComponent()
	conf := c.Settings()
	conf.Version = version
	return c.New(context.Background(), conf)
}

// Version returns the embedded version marker.
func (p *Page) Version() string {
	return p.version
}

// Body returns the rendered HTML.
func (p *Page) Body() string {
	return p.body
}

// Response builds the response for the page. Each call returns its own
// headers map.
func (p *Page) Response() Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type": ContentType,
		},
		Body: p.body,
	}
}
