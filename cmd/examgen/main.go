// Command examgen produces paired exam PDFs from a .ptf question file
// and a YAML configuration: a student exam with a bubble answer sheet,
// and a password-protected answer key carrying the encrypted answer
// code in a QR symbol. It also decodes such codes back.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jaguilar992/exam-generator/answerkey"
	"github.com/jaguilar992/exam-generator/config"
	"github.com/jaguilar992/exam-generator/exam"
	"github.com/jaguilar992/exam-generator/qr"
)

func main() {
	var (
		questionsPath = flag.String("questions", "", "Path to the .ptf question file")
		configPath    = flag.String("config", "", "Path to the YAML exam configuration")
		examPath      = flag.String("exam", "exam.pdf", "Output path for the student exam PDF")
		keyPath       = flag.String("key", "answer_key.pdf", "Output path for the answer key PDF")
		shuffle       = flag.Bool("shuffle", true, "Shuffle answer options per question")
		maxQuestions  = flag.Int("max", 0, "Limit the number of questions (0 = all)")
		seed          = flag.Int64("seed", 0, "Shuffle seed for reproducible exams (0 = random)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")

		decode   = flag.String("decode", "", "Decode an encrypted answer code (or QR image with -image) instead of generating")
		imageIn  = flag.String("image", "", "Path to a scanned QR image to decode")
		password = flag.String("password", "", "Password for -decode / -image")
	)
	flag.Parse()
	log.SetOutput(os.Stderr)

	if *decode != "" || *imageIn != "" {
		if err := runDecode(*decode, *imageIn, *password); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	if *questionsPath == "" {
		log.Fatal("Error: -questions flag is required")
	}
	if *configPath == "" {
		log.Fatal("Error: -config flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	session, err := exam.NewSession(cfg, exam.Options{
		Shuffle:      *shuffle,
		MaxQuestions: *maxQuestions,
		Seed:         *seed,
		Verbose:      *verbose,
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := session.LoadQuestionsFile(*questionsPath); err != nil {
		log.Fatalf("Error loading questions: %v", err)
	}
	if *verbose {
		log.Printf("Questions: %s (%d used)", *questionsPath, session.QuestionCount())
	}

	if err := session.GenerateBoth(*examPath, *keyPath); err != nil {
		log.Fatalf("Error generating artifacts: %v", err)
	}

	fmt.Printf("Student exam: %s\n", *examPath)
	fmt.Printf("Answer key:   %s\n", *keyPath)
}

// runDecode recovers an answer key from an encrypted code or a
// scanned QR image.
func runDecode(ciphertext, imagePath, password string) error {
	if password == "" {
		return fmt.Errorf("-password is required for decoding")
	}

	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("cannot read image: %w", err)
		}
		ciphertext, err = qr.ReadBytes(data)
		if err != nil {
			return err
		}
	}

	decoded, err := answerkey.DecryptQRData(ciphertext, password)
	if err != nil {
		return err
	}

	fmt.Printf("Questions:    %d\n", decoded.NumQuestions)
	fmt.Printf("Total points: %d\n", decoded.TotalPoints)
	fmt.Printf("Answers:      %s\n", decoded.Letters)
	return nil
}
