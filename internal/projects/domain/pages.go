package domain

// Logical page paths whose cached renderings depend on project data.
const (
	PathHome     = "/"
	PathProjects = "/projects"
	PathAdmin    = "/admin"
)

func ProjectPath(id string) string {
	return PathProjects + "/" + id
}

func AdminEditPath(id string) string {
	return PathAdmin + "/edit/" + id
}
