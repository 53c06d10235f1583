package engines

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

type GoTextEngine struct {
}

var commonTemplateFuncs template.FuncMap

func init() {
	commonTemplateFuncs = builtinFuncs()
}

// RenderFile renders srcPath template to dstPath using go text/template engine.
func (GoTextEngine) RenderFile(srcPath string, dstPath string, data interface{}) error {
	stat, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("error getting file info %s: %s", srcPath, err)
	}
	originFileMode := stat.Mode()

	parsedTemplate, err := template.New(filepath.Base(srcPath)).
		Funcs(commonTemplateFuncs).ParseFiles(srcPath)
	if err != nil {
		return fmt.Errorf("error parsing %s: %s", srcPath, err)
	}
	parsedTemplate.Option("missingkey=error") // Treat missing variable as error.

	var buffer bytes.Buffer
	if err := parsedTemplate.Execute(&buffer, data); err != nil {
		return fmt.Errorf("template execution failed: %s", err)
	}

	if err := os.WriteFile(dstPath, buffer.Bytes(), originFileMode); err != nil {
		return fmt.Errorf("error creating %s: %s", dstPath, err)
	}
	return os.Chmod(dstPath, originFileMode)
}

// RenderText renders in text using go text/template engine.
func (GoTextEngine) RenderText(in string, data interface{}) (string, error) {
	if !strings.Contains(in, "{{") {
		return in, nil
	}
	parsedTemplate, err := template.New("file").Funcs(commonTemplateFuncs).Parse(in)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %s", in, err)
	}
	parsedTemplate.Option("missingkey=error")

	var buffer bytes.Buffer
	if err = parsedTemplate.Execute(&buffer, data); err != nil {
		return "", fmt.Errorf("template execution failed: %s", err)
	}

	return buffer.String(), nil
}
