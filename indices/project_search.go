package indices

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"launchmaster/bizerror"
	"launchmaster/client/es"
	"launchmaster/domain/project"

	"github.com/fundwit/go-commons/types"
)

var (
	SearchProjectsFunc    = SearchProjects
	GetIndexedProjectFunc = GetIndexedProject

	SearchSize = 100
)

var errSearchDisabled = &bizerror.ErrServiceUnavailable{Code: "search.disabled"}

// SearchProjects matches q against name, client and description, best matches first.
// An empty q lists indexed projects.
func SearchProjects(ctx context.Context, q string) ([]project.Project, error) {
	if es.ActiveESClient == nil {
		return nil, errSearchDisabled
	}

	/*
		{
			"query": {
				"multi_match": {"query": "xxx", "fields": ["name^2", "client", "description"]}
			},
			"size": 100
		}
	*/
	query := es.H{"match_all": es.H{}}
	if q = strings.TrimSpace(q); q != "" {
		query = es.H{"multi_match": es.H{"query": q, "fields": []string{"name^2", "client", "description"}}}
	}

	r, err := es.SearchFunc(ctx, ProjectIndexName, es.H{"size": SearchSize, "query": query})
	if err != nil {
		return nil, err
	}
	projects := make([]project.Project, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		doc := ProjectDocument{}
		if err := json.NewDecoder(strings.NewReader(string(hit.Source))).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project document %s: %w", hit.Id, err)
		}
		projects = append(projects, doc.Project)
	}
	return projects, nil
}

// GetIndexedProject returns the project document as the search index holds it.
func GetIndexedProject(ctx context.Context, id types.ID) (*project.Project, error) {
	if es.ActiveESClient == nil {
		return nil, errSearchDisabled
	}
	source, err := es.GetDocumentFunc(ctx, ProjectIndexName, id)
	if err != nil {
		return nil, err
	}
	doc := ProjectDocument{}
	if err := json.Unmarshal([]byte(source), &doc); err != nil {
		return nil, fmt.Errorf("decode project document %d: %w", id, err)
	}
	return &doc.Project, nil
}
