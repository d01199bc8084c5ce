package generator

import (
	"context"
	"path"

	"sigs.k8s.io/yaml"

	"github.com/opmodel/kickstart/internal/features"
)

const (
	chartVersion    = "0.1.0"
	chartAPIVersion = "v2"
)

// Helm writes a deployment chart under deploy/helm/<name>.
type Helm struct {
	env Env
}

// NewHelm creates the chart generator.
func NewHelm(env Env) *Helm {
	return &Helm{env: env}
}

func (g *Helm) Name() string { return "helm" }
func (g *Helm) Dir() string  { return path.Join("deploy", "helm", g.env.Data.Name) }

// Generate implements Generator. Component templates are only written for
// enabled packages; the migration job ships with the database.
func (g *Helm) Generate(ctx context.Context) error {
	fs := g.env.Data.Features
	files := []file{
		generated("Chart.yaml", g.chartYAML),
		generated("values.yaml", g.valuesYAML),
		tmpl(".helmignore", "helm/helmignore"),
		tmpl("templates/_helpers.tpl", "helm/_helpers.tpl"),
		tmpl("templates/secret.yaml", "helm/secret.yaml"),
		tmpl("templates/serviceaccount.yaml", "helm/serviceaccount.yaml"),
	}
	if fs.HasContainerized() {
		files = append(files, tmpl("templates/routes.yaml", "helm/routes.yaml"))
	}
	if fs.API {
		files = append(files,
			tmpl("templates/api-deployment.yaml", "helm/api-deployment.yaml"),
			tmpl("templates/api-service.yaml", "helm/api-service.yaml"),
		)
	}
	if fs.UI {
		files = append(files,
			tmpl("templates/ui-deployment.yaml", "helm/ui-deployment.yaml"),
			tmpl("templates/ui-service.yaml", "helm/ui-service.yaml"),
		)
	}
	if fs.DB {
		files = append(files,
			tmpl("templates/database-deployment.yaml", "helm/database-deployment.yaml"),
			tmpl("templates/database-service.yaml", "helm/database-service.yaml"),
			tmpl("templates/database-pvc.yaml", "helm/database-pvc.yaml"),
			tmpl("templates/migration-job.yaml", "helm/migration-job.yaml"),
		)
	}
	return emit(ctx, g.env, g.Dir(), []string{"templates"}, files)
}

// Chart is the Chart.yaml document.
type Chart struct {
	APIVersion  string   `json:"apiVersion"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Version     string   `json:"version"`
	AppVersion  string   `json:"appVersion"`
	Keywords    []string `json:"keywords,omitempty"`
}

func (g *Helm) chartYAML() ([]byte, error) {
	d := g.env.Data
	keywords := append([]string{"monorepo"}, d.Features.Enabled()...)
	return yaml.Marshal(Chart{
		APIVersion:  chartAPIVersion,
		Name:        d.Name,
		Description: d.Description,
		Type:        "application",
		Version:     chartVersion,
		AppVersion:  chartVersion,
		Keywords:    keywords,
	})
}

// Values is the values.yaml document. Every component section is always
// present so templates can test .enabled without nil checks.
type Values struct {
	NameOverride       string            `json:"nameOverride"`
	FullnameOverride   string            `json:"fullnameOverride"`
	Global             GlobalValues      `json:"global"`
	Secrets            map[string]string `json:"secrets"`
	Routes             RouteValues       `json:"routes"`
	API                ComponentValues   `json:"api"`
	UI                 ComponentValues   `json:"ui"`
	Database           DatabaseValues    `json:"database"`
	Migration          MigrationValues   `json:"migration"`
	ServiceAccount     ServiceAccount    `json:"serviceAccount"`
	PodSecurityContext map[string]any    `json:"podSecurityContext"`
	SecurityContext    map[string]any    `json:"securityContext"`
	NodeSelector       map[string]string `json:"nodeSelector"`
	Tolerations        []any             `json:"tolerations"`
	Affinity           map[string]any    `json:"affinity"`
}

type GlobalValues struct {
	ImageRegistry   string `json:"imageRegistry"`
	ImageRepository string `json:"imageRepository"`
	ImageTag        string `json:"imageTag"`
	ImagePullPolicy string `json:"imagePullPolicy"`
	StorageClass    string `json:"storageClass"`
}

type RouteValues struct {
	Enabled     bool              `json:"enabled"`
	Annotations map[string]string `json:"annotations"`
	SharedHost  string            `json:"sharedHost"`
	UI          RouteHost         `json:"ui"`
	API         RouteHost         `json:"api"`
}

type RouteHost struct {
	Host string   `json:"host"`
	TLS  RouteTLS `json:"tls"`
}

type RouteTLS struct {
	Enabled                       bool   `json:"enabled"`
	Termination                   string `json:"termination"`
	InsecureEdgeTerminationPolicy string `json:"insecureEdgeTerminationPolicy"`
}

type Image struct {
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
}

type ServiceValues struct {
	Type string `json:"type"`
	Port int    `json:"port"`
}

type HealthCheck struct {
	Enabled             bool   `json:"enabled"`
	Path                string `json:"path"`
	InitialDelaySeconds int    `json:"initialDelaySeconds"`
	PeriodSeconds       int    `json:"periodSeconds"`
}

type Resources struct {
	Requests map[string]string `json:"requests"`
	Limits   map[string]string `json:"limits"`
}

type ComponentValues struct {
	Enabled     bool          `json:"enabled"`
	Name        string        `json:"name"`
	Image       Image         `json:"image"`
	Service     ServiceValues `json:"service"`
	Replicas    int           `json:"replicas"`
	Resources   Resources     `json:"resources"`
	HealthCheck HealthCheck   `json:"healthCheck"`
}

type Persistence struct {
	Enabled    bool   `json:"enabled"`
	Size       string `json:"size"`
	AccessMode string `json:"accessMode"`
}

type DatabaseValues struct {
	Enabled     bool          `json:"enabled"`
	Name        string        `json:"name"`
	Image       Image         `json:"image"`
	Service     ServiceValues `json:"service"`
	Persistence Persistence   `json:"persistence"`
	Resources   Resources     `json:"resources"`
}

type MigrationValues struct {
	Enabled                 bool      `json:"enabled"`
	Name                    string    `json:"name"`
	Image                   Image     `json:"image"`
	RestartPolicy           string    `json:"restartPolicy"`
	BackoffLimit            int       `json:"backoffLimit"`
	TTLSecondsAfterFinished int       `json:"ttlSecondsAfterFinished"`
	Resources               Resources `json:"resources"`
}

type ServiceAccount struct {
	Create      bool              `json:"create"`
	Annotations map[string]string `json:"annotations"`
	Name        string            `json:"name"`
}

func resources(cpuReq, memReq, cpuLim, memLim string) Resources {
	return Resources{
		Requests: map[string]string{"cpu": cpuReq, "memory": memReq},
		Limits:   map[string]string{"cpu": cpuLim, "memory": memLim},
	}
}

// NewValues builds chart values for the project.
func (g *Helm) NewValues() Values {
	d := g.env.Data
	fs := d.Features

	v := Values{
		Global: GlobalValues{
			ImageRegistry:   "ghcr.io",
			ImageRepository: d.Name,
			ImageTag:        "latest",
			ImagePullPolicy: "IfNotPresent",
		},
		Secrets: map[string]string{},
		Routes: RouteValues{
			Enabled:     fs.HasContainerized(),
			Annotations: map[string]string{},
			UI: RouteHost{
				Host: d.Name + ".example.com",
				TLS:  RouteTLS{Enabled: true, Termination: "edge", InsecureEdgeTerminationPolicy: "Redirect"},
			},
			API: RouteHost{
				Host: "api." + d.Name + ".example.com",
				TLS:  RouteTLS{Enabled: true, Termination: "edge", InsecureEdgeTerminationPolicy: "Redirect"},
			},
		},
		API: ComponentValues{
			Enabled:   fs.API,
			Name:      features.API,
			Image:     Image{Repository: features.API},
			Service:   ServiceValues{Type: "ClusterIP", Port: 8000},
			Replicas:  1,
			Resources: resources("100m", "128Mi", "500m", "512Mi"),
			HealthCheck: HealthCheck{
				Enabled: true, Path: "/health", InitialDelaySeconds: 10, PeriodSeconds: 10,
			},
		},
		UI: ComponentValues{
			Enabled:   fs.UI,
			Name:      features.UI,
			Image:     Image{Repository: features.UI},
			Service:   ServiceValues{Type: "ClusterIP", Port: 8080},
			Replicas:  1,
			Resources: resources("50m", "64Mi", "200m", "256Mi"),
			HealthCheck: HealthCheck{
				Enabled: true, Path: "/", InitialDelaySeconds: 5, PeriodSeconds: 10,
			},
		},
		Database: DatabaseValues{
			Enabled:     fs.DB,
			Name:        "database",
			Image:       Image{Repository: "postgres", Tag: "16-alpine"},
			Service:     ServiceValues{Type: "ClusterIP", Port: 5432},
			Persistence: Persistence{Enabled: true, Size: "1Gi", AccessMode: "ReadWriteOnce"},
			Resources:   resources("100m", "256Mi", "500m", "1Gi"),
		},
		Migration: MigrationValues{
			Enabled:                 fs.DB,
			Name:                    "migration",
			Image:                   Image{Repository: features.DB},
			RestartPolicy:           "OnFailure",
			BackoffLimit:            3,
			TTLSecondsAfterFinished: 300,
			Resources:               resources("50m", "64Mi", "200m", "256Mi"),
		},
		ServiceAccount:     ServiceAccount{Create: true, Annotations: map[string]string{}},
		PodSecurityContext: map[string]any{},
		SecurityContext: map[string]any{
			"allowPrivilegeEscalation": false,
			"capabilities":             map[string]any{"drop": []string{"ALL"}},
		},
		NodeSelector: map[string]string{},
		Tolerations:  []any{},
		Affinity:     map[string]any{},
	}
	if fs.DB {
		v.Secrets["POSTGRES_DB"] = d.Name
		v.Secrets["POSTGRES_USER"] = "user"
		v.Secrets["POSTGRES_PASSWORD"] = "changeme"
	}
	return v
}

func (g *Helm) valuesYAML() ([]byte, error) {
	out, err := yaml.Marshal(g.NewValues())
	if err != nil {
		return nil, err
	}
	header := "# Default values for " + g.env.Data.Name + ".\n" +
		"# Override per environment with -f or --set.\n"
	return append([]byte(header), out...), nil
}
