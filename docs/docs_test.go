package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegisteredAndValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var v map[string]any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		t.Fatalf("doc is not JSON: %v", err)
	}
	paths, _ := v["paths"].(map[string]any)
	if _, ok := paths["/v1/images/generations"]; !ok {
		t.Fatalf("missing generations path")
	}
}
