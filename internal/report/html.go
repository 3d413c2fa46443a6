package report

import (
	"html/template"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sangnn2012/disk-cleaner/pkg/models"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Disk Space Analysis Report</title>
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; margin: 20px; }
        h1 { color: #333; }
        table { border-collapse: collapse; width: 100%; margin-top: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #4a90d9; color: white; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        tr:hover { background-color: #f1f1f1; }
        .size { text-align: right; }
        .stats { background: #f5f5f5; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
    </style>
</head>
<body>
    <h1>Disk Space Analysis Report</h1>
    <div class="stats">
        <p><strong>Generated:</strong> {{.Generated}}</p>
        <p><strong>Total Files:</strong> {{.TotalFiles}}</p>
        <p><strong>Total Size:</strong> {{.TotalSize}}</p>
    </div>
    <table>
        <thead>
            <tr>
                <th>Name</th>
                <th>Size</th>
                <th>Category</th>
                <th>Last Accessed</th>
                <th>Path</th>
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
                <td>{{.Name}}</td>
                <td class="size">{{.Size}}</td>
                <td>{{.Category}}</td>
                <td>{{.LastAccessed}}</td>
                <td>{{.Path}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
</body>
</html>`

type htmlRow struct {
	Name         string
	Size         string
	Category     string
	LastAccessed string
	Path         string
}

type htmlData struct {
	Generated  string
	TotalFiles int
	TotalSize  string
	Rows       []htmlRow
}

// generateHTML exports the classified file listing as an HTML table.
func (g *Generator) generateHTML(results *models.ScanResults, outputFile string) error {
	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return err
	}

	data := htmlData{
		Generated:  time.Now().Format("2006-01-02 15:04:05"),
		TotalFiles: len(results.Files),
		TotalSize:  humanize.IBytes(uint64(results.TotalBytes)),
	}
	for _, file := range results.Files {
		data.Rows = append(data.Rows, htmlRow{
			Name:         file.Name,
			Size:         humanize.IBytes(uint64(file.Size)),
			Category:     string(file.Category),
			LastAccessed: file.LastAccessed.Format("2006-01-02 15:04"),
			Path:         file.Path,
		})
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}
