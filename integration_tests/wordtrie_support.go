package integration

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// revive:disable:dot-imports
	. "github.com/onsi/gomega"
	// revive:enable:dot-imports
)

const apiPort = 3168

var postgresContainer *postgres.PostgresContainer

func runPostgresContainer(ctx context.Context) (*postgres.PostgresContainer, func(), error) {
	dbName := "wordtrie"
	dbUser := "user"
	dbPassword := "password"

	container, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithInitScripts(filepath.Join("testdata", "init-words-db.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)

	if err != nil {
		return nil, nil, fmt.Errorf("failed to run container: %w", err)
	}

	return container, func() {
		if err := container.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}, nil
}

func apiURL(port int, path string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", port, path)
}

func reloadDictionary(port int) {
	req, err := http.NewRequestWithContext(
		context.Background(),
		http.MethodPost,
		apiURL(port, "/reload"),
		http.NoBody,
	)
	Expect(err).NotTo(HaveOccurred())

	resp, err := http.DefaultClient.Do(req)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(202))
	resp.Body.Close()
	// Reloading is asynchronous, so give it a moment to complete.
	time.Sleep(time.Millisecond * 50)
}

var runningServers = make(map[int]*exec.Cmd)

func startWordtrie(port int, extraEnv []string) error {
	apiAddr := net.JoinHostPort("localhost", strconv.Itoa(port))

	bin := os.Getenv("BINARY")
	if bin == "" {
		bin = "../wordtrie"
	}
	cmd := exec.Command(bin)

	cmd.Env = append(cmd.Env, fmt.Sprintf("WORDTRIE_APIADDR=%s", apiAddr))
	cmd.Env = append(cmd.Env, fmt.Sprintf("WORDTRIE_ERROR_LOG=%s", tempLogfile.Name()))
	cmd.Env = append(cmd.Env, "WORDTRIE_DEBUG=1")
	cmd.Env = append(cmd.Env, "WORDTRIE_DICTIONARY="+testDictionary)
	cmd.Env = append(cmd.Env, "WORDTRIE_DATABASE_URL="+postgresContainer.MustConnectionString(context.Background()))
	cmd.Env = append(cmd.Env, extraEnv...)

	if os.Getenv("WORDTRIE_DEBUG_TESTS") != "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Start()
	if err != nil {
		return err
	}

	waitForServerUp(apiAddr)

	runningServers[port] = cmd
	return nil
}

func stopWordtrie(port int) {
	cmd := runningServers[port]
	if cmd != nil && cmd.Process != nil {
		err := cmd.Process.Signal(syscall.SIGINT)
		Expect(err).NotTo(HaveOccurred())
		_, err = cmd.Process.Wait()
		Expect(err).NotTo(HaveOccurred())
	}
	delete(runningServers, port)
}

func waitForServerUp(addr string) {
	for i := 0; i < 20; i++ {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	panic("Server not accepting connections after 20 attempts")
}
