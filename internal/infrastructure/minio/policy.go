package minio

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/minio/minio-go/v7"
)

const publicReadSid = "PaintrackPublicRead"

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []json.RawMessage `json:"Statement"`
}

type policyStatement struct {
	Sid       string              `json:"Sid,omitempty"`
	Effect    string              `json:"Effect"`
	Principal map[string][]string `json:"Principal"`
	Action    []string            `json:"Action"`
	Resource  []string            `json:"Resource"`
}

// grantStatement is read leniently: Action, Resource and Principal may each be
// a bare string or a list in policies written by other tools.
type grantStatement struct {
	Sid       string          `json:"Sid"`
	Effect    string          `json:"Effect"`
	Principal json.RawMessage `json:"Principal"`
	Action    stringList      `json:"Action"`
	Resource  stringList      `json:"Resource"`
}

type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = stringList{one}

		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many

	return nil
}

// PolicyVisibility grants anonymous read on a key prefix through the bucket
// policy. MinIO has no per-object ACLs, so every key under the prefix becomes
// readable once the statement is in place.
type PolicyVisibility struct {
	minioClient *minio.Client
	prefix      string
	ensured     atomic.Bool
}

func NewPolicyVisibility(minioClient *minio.Client, prefix string) *PolicyVisibility {
	if prefix == "" {
		prefix = "users/"
	}

	return &PolicyVisibility{
		minioClient: minioClient,
		prefix:      prefix,
	}
}

func (p *PolicyVisibility) MakePublic(ctx context.Context, bucket, key string) error {
	if !strings.HasPrefix(key, p.prefix) {
		return fmt.Errorf("object %q is outside public prefix %q", key, p.prefix)
	}

	if p.ensured.Load() {
		return nil
	}

	current, err := p.minioClient.GetBucketPolicy(ctx, bucket)
	if err != nil {
		return fmt.Errorf("get bucket policy: %w", err)
	}

	resource := p.resource(bucket)
	granted, err := grantsPublicRead(current, resource)
	if err != nil {
		return err
	}
	if granted {
		p.ensured.Store(true)

		return nil
	}

	updated, err := p.withPublicRead(current, resource)
	if err != nil {
		return err
	}

	if err := p.minioClient.SetBucketPolicy(ctx, bucket, updated); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}

	p.ensured.Store(true)

	return nil
}

func (p *PolicyVisibility) resource(bucket string) string {
	return fmt.Sprintf("arn:aws:s3:::%s/%s*", bucket, p.prefix)
}

func (p *PolicyVisibility) withPublicRead(current, resource string) (string, error) {
	doc := policyDocument{Version: "2012-10-17"}
	if strings.TrimSpace(current) != "" {
		if err := json.Unmarshal([]byte(current), &doc); err != nil {
			return "", fmt.Errorf("parse bucket policy: %w", err)
		}
	}

	statement, err := json.Marshal(policyStatement{
		Sid:       publicReadSid,
		Effect:    "Allow",
		Principal: map[string][]string{"AWS": {"*"}},
		Action:    []string{"s3:GetObject"},
		Resource:  []string{resource},
	})
	if err != nil {
		return "", err
	}
	doc.Statement = append(doc.Statement, statement)

	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// grantsPublicRead reports whether the policy already has an Allow statement
// on resource that is ours or that gives anonymous s3:GetObject. Deny
// statements and grants on other resources do not count.
func grantsPublicRead(current, resource string) (bool, error) {
	if strings.TrimSpace(current) == "" {
		return false, nil
	}

	var doc policyDocument
	if err := json.Unmarshal([]byte(current), &doc); err != nil {
		return false, fmt.Errorf("parse bucket policy: %w", err)
	}

	for _, raw := range doc.Statement {
		var st grantStatement
		if err := json.Unmarshal(raw, &st); err != nil {
			continue
		}

		if st.Effect != "Allow" || !slices.Contains(st.Resource, resource) {
			continue
		}

		if st.Sid == publicReadSid {
			return true, nil
		}

		if anonymous(st.Principal) && (slices.Contains(st.Action, "s3:GetObject") || slices.Contains(st.Action, "s3:*")) {
			return true, nil
		}
	}

	return false, nil
}

func anonymous(principal json.RawMessage) bool {
	var star string
	if err := json.Unmarshal(principal, &star); err == nil {
		return star == "*"
	}

	var byType map[string]stringList
	if err := json.Unmarshal(principal, &byType); err != nil {
		return false
	}

	return slices.Contains(byType["AWS"], "*")
}

// NoopVisibility is used when the bucket is already publicly readable.
type NoopVisibility struct{}

func (NoopVisibility) MakePublic(context.Context, string, string) error { return nil }
