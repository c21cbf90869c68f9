// Package writer serializes an assembled B' table to the fixed-width text
// layout consumed by surface energy balance codes, and records a YAML
// manifest describing the run that produced it.
package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"bprime/model"

	log "github.com/sirupsen/logrus"
)

// 每个字段 %1.10E，后接两个空格
const fieldFormat = "%1.10E  "

// 写出表格: 压力(外) -> Bg(中) -> 温度(内)，每个 Bg 块后空一行
func WriteTable(w io.Writer, table *model.FinalTable) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, model.TableHeader); err != nil {
		return err
	}
	for k := 0; k < table.NP; k++ {
		for j := 0; j < table.NB; j++ {
			for i := 0; i < table.NT; i++ {
				if err := writeRow(bw, table.At(k, j, i)); err != nil {
					return err
				}
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, c model.OutputCell) error {
	for _, v := range [...]float64{c.Pressure, c.Bg, c.Temperature, c.AblationRate, c.WallEnthalpy} {
		if _, err := fmt.Fprintf(w, fieldFormat, v); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// 写出到文件
func WriteFile(path string, table *model.FinalTable) error {
	start := time.Now()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTable(f, table); err != nil {
		f.Close()
		return fmt.Errorf("write table %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file": path,
		"rows": table.Len(),
		"cost": time.Since(start).String(),
	}).Info("B' 表已保存")
	return nil
}
