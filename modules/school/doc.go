// Package school assembles the edge router for a multi-tenant school
// platform: tenant resolution middleware in front of dashboard, API and
// super-admin mounts, with health probes outside the pipeline.
package school
