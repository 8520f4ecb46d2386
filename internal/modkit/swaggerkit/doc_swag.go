//go:build swag

package swaggerkit

import docs "caserelay/internal/services/api/docs"

// docReader returns the document swag generated from the handler annotations
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
