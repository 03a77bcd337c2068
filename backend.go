package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gravitational/trace"
	"gopkg.in/yaml.v3"
)

// Node is a server registered with the cluster.
type Node struct {
	ID       string            `json:"id" yaml:"id"`
	Hostname string            `json:"hostname" yaml:"hostname"`
	Addr     string            `json:"addr" yaml:"addr"`
	Labels   map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

// Session is an active interactive session on a node.
type Session struct {
	ID             string    `json:"id" yaml:"id"`
	Login          string    `json:"login" yaml:"login"`
	ServerID       string    `json:"server_id" yaml:"server_id"`
	ServerHostname string    `json:"server_hostname" yaml:"server_hostname"`
	Parties        []string  `json:"parties" yaml:"parties"`
	Created        time.Time `json:"created" yaml:"created"`
}

// Backend serves the cluster data the console displays.
type Backend interface {
	Nodes(ctx context.Context) ([]Node, error)
	Sessions(ctx context.Context) ([]Session, error)
}

// newBackend picks the fixture backend when a fixture file is configured and
// the proxy web API otherwise.
func newBackend(cfg Config) (Backend, error) {
	if cfg.Fixture != "" {
		return loadFixtureBackend(cfg.Fixture)
	}
	return newWebBackend(cfg.Proxy, cfg.Cluster, cfg.Token, nil)
}

// --- WEB API ---

type webBackend struct {
	base    *url.URL
	cluster string
	token   string
	client  *http.Client
}

func newWebBackend(proxy, cluster, token string, client *http.Client) (*webBackend, error) {
	if proxy == "" {
		return nil, trace.BadParameter("missing proxy address")
	}
	if !strings.Contains(proxy, "://") {
		proxy = "https://" + proxy
	}
	base, err := url.Parse(proxy)
	if err != nil {
		return nil, trace.BadParameter("invalid proxy address %q: %v", proxy, err)
	}
	if cluster == "" {
		cluster = base.Hostname()
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &webBackend{base: base, cluster: cluster, token: token, client: client}, nil
}

type webNode struct {
	ID       string `json:"id"`
	Hostname string `json:"hostname"`
	Addr     string `json:"addr"`
	Tags     []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"tags"`
}

type webParty struct {
	User string `json:"user"`
}

type webSession struct {
	ID             string     `json:"id"`
	Login          string     `json:"login"`
	ServerID       string     `json:"server_id"`
	ServerHostname string     `json:"server_hostname"`
	Parties        []webParty `json:"parties"`
	Created        time.Time  `json:"created"`
}

func (b *webBackend) Nodes(ctx context.Context) ([]Node, error) {
	var out struct {
		Items []webNode `json:"items"`
	}
	if err := b.get(ctx, "nodes", &out); err != nil {
		return nil, trace.Wrap(err)
	}
	nodes := make([]Node, 0, len(out.Items))
	for _, n := range out.Items {
		node := Node{ID: n.ID, Hostname: n.Hostname, Addr: n.Addr}
		if len(n.Tags) > 0 {
			node.Labels = make(map[string]string, len(n.Tags))
			for _, t := range n.Tags {
				node.Labels[t.Name] = t.Value
			}
		}
		nodes = append(nodes, node)
	}
	sortNodes(nodes)
	return nodes, nil
}

func (b *webBackend) Sessions(ctx context.Context) ([]Session, error) {
	var out struct {
		Sessions []webSession `json:"sessions"`
	}
	if err := b.get(ctx, "sessions", &out); err != nil {
		return nil, trace.Wrap(err)
	}
	sessions := make([]Session, 0, len(out.Sessions))
	for _, s := range out.Sessions {
		session := Session{
			ID:             s.ID,
			Login:          s.Login,
			ServerID:       s.ServerID,
			ServerHostname: s.ServerHostname,
			Created:        s.Created,
		}
		for _, p := range s.Parties {
			session.Parties = append(session.Parties, p.User)
		}
		sessions = append(sessions, session)
	}
	sortSessions(sessions)
	return sessions, nil
}

func (b *webBackend) endpoint(resource string) string {
	u := *b.base
	u.Path = fmt.Sprintf("/v1/webapi/sites/%s/%s", url.PathEscape(b.cluster), resource)
	return u.String()
}

func (b *webBackend) get(ctx context.Context, resource string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint(resource), nil)
	if err != nil {
		return trace.Wrap(err)
	}
	req.Header.Set("Accept", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return trace.ConnectionProblem(err, "failed to reach proxy %v", b.base.Host)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return trace.Wrap(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return trace.ReadError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return trace.BadParameter("malformed %v response: %v", resource, err)
	}
	return nil
}

// --- FIXTURE ---

// fixtureBackend serves a static cluster snapshot loaded from YAML.
type fixtureBackend struct {
	nodes    []Node
	sessions []Session
}

type fixtureFile struct {
	Nodes    []Node    `yaml:"nodes"`
	Sessions []Session `yaml:"sessions"`
}

func loadFixtureBackend(path string) (*fixtureBackend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	return parseFixture(data)
}

func parseFixture(data []byte) (*fixtureBackend, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, trace.BadParameter("invalid fixture: %v", err)
	}
	for i, n := range f.Nodes {
		if n.ID == "" {
			return nil, trace.BadParameter("fixture node %d is missing an id", i)
		}
	}
	for i, s := range f.Sessions {
		if s.ID == "" {
			return nil, trace.BadParameter("fixture session %d is missing an id", i)
		}
	}
	sortNodes(f.Nodes)
	sortSessions(f.Sessions)
	return &fixtureBackend{nodes: f.Nodes, sessions: f.Sessions}, nil
}

func (b *fixtureBackend) Nodes(ctx context.Context) ([]Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, trace.Wrap(err)
	}
	return append([]Node(nil), b.nodes...), nil
}

func (b *fixtureBackend) Sessions(ctx context.Context) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, trace.Wrap(err)
	}
	return append([]Session(nil), b.sessions...), nil
}

func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Hostname < nodes[j].Hostname
	})
}

// Newest sessions first.
func sortSessions(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Created.After(sessions[j].Created)
	})
}
