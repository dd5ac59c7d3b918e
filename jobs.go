package main

import (
	"bufio"
	"errors"
	"os"
	"os/exec"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/creack/pty"
)

type jobMsg interface {
	isJob()
	jobID() int
}

type jobStartedMsg struct {
	Title string
	ID    int
}

func (jobStartedMsg) isJob()         {}
func (msg jobStartedMsg) jobID() int { return msg.ID }

type jobLogMsg struct {
	Title string
	Line  string
	ID    int
}

func (jobLogMsg) isJob()         {}
func (msg jobLogMsg) jobID() int { return msg.ID }

type jobFinishedMsg struct {
	Title string
	Err   error
	ID    int
}

func (jobFinishedMsg) isJob()         {}
func (msg jobFinishedMsg) jobID() int { return msg.ID }

type jobChannelClosedMsg struct {
	ID int
}

func (jobChannelClosedMsg) isJob()         {}
func (msg jobChannelClosedMsg) jobID() int { return msg.ID }

var errJobCancelled = errors.New("job cancelled before start")

type jobRequest struct {
	title   string
	dir     string
	command string
	args    []string
	env     []string
}

// jobManager runs post-export hooks one at a time. Output is streamed back
// line by line as jobLogMsg.
type jobManager struct {
	queue   []*queuedJob
	current *queuedJob
	running bool
	lastID  int
}

type queuedJob struct {
	id  int
	req jobRequest
	ch  chan jobMsg

	mu       sync.Mutex
	cmd      *exec.Cmd
	canceled bool
}

// interrupt signals the job's process. A job whose process has not been
// started yet is marked so runJob never starts it.
func (job *queuedJob) interrupt() {
	job.mu.Lock()
	defer job.mu.Unlock()
	job.canceled = true
	if job.cmd != nil && job.cmd.Process != nil {
		_ = job.cmd.Process.Signal(os.Interrupt)
	}
}

func newJobManager() *jobManager {
	return &jobManager{}
}

func (jm *jobManager) Enqueue(req jobRequest) (int, tea.Cmd) {
	jm.lastID++
	jm.queue = append(jm.queue, &queuedJob{id: jm.lastID, req: req})
	return jm.lastID, jm.nextCmd()
}

func (jm *jobManager) Running() bool {
	return jm.running
}

// Handle advances the queue and returns the command that keeps listening
// for the running job's output.
func (jm *jobManager) Handle(msg jobMsg) tea.Cmd {
	switch msg.(type) {
	case jobStartedMsg, jobLogMsg:
		if jm.current != nil && jm.current.id == msg.jobID() {
			return waitForJobMsg(jm.current.id, jm.current.ch)
		}
	case jobFinishedMsg:
		if jm.current != nil && jm.current.id == msg.jobID() {
			return waitForJobMsg(jm.current.id, jm.current.ch)
		}
	case jobChannelClosedMsg:
		if jm.current != nil && jm.current.id == msg.jobID() {
			jm.running = false
			jm.current = nil
			return jm.nextCmd()
		}
	}
	return nil
}

// Cancel interrupts the running job or drops a queued one.
func (jm *jobManager) Cancel() (int, bool) {
	if jm.current != nil {
		jm.current.interrupt()
		return jm.current.id, true
	}
	if len(jm.queue) > 0 {
		id := jm.queue[0].id
		jm.queue = jm.queue[1:]
		return id, true
	}
	return 0, false
}

func (jm *jobManager) nextCmd() tea.Cmd {
	if jm.running {
		return nil
	}
	if len(jm.queue) == 0 {
		return nil
	}
	job := jm.queue[0]
	jm.queue = jm.queue[1:]
	job.ch = make(chan jobMsg)
	jm.current = job
	jm.running = true

	go runJob(job, job.ch)
	return waitForJobMsg(job.id, job.ch)
}

func runJob(job *queuedJob, ch chan<- jobMsg) {
	defer close(ch)

	req := job.req
	ch <- jobStartedMsg{Title: req.title, ID: job.id}

	cmd := exec.Command(req.command, req.args...)
	if req.dir != "" {
		cmd.Dir = req.dir
	}
	if len(req.env) > 0 {
		env := append([]string{}, os.Environ()...)
		env = append(env, req.env...)
		cmd.Env = env
	}

	job.mu.Lock()
	if job.canceled {
		job.mu.Unlock()
		ch <- jobFinishedMsg{Title: req.title, Err: errJobCancelled, ID: job.id}
		return
	}
	ptmx, err := pty.Start(cmd)
	if err != nil {
		job.mu.Unlock()
		ch <- jobLogMsg{Title: req.title, Line: err.Error(), ID: job.id}
		ch <- jobFinishedMsg{Title: req.title, Err: err, ID: job.id}
		return
	}
	job.cmd = cmd
	job.mu.Unlock()
	defer ptmx.Close()

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(ptmx)
		for scanner.Scan() {
			ch <- jobLogMsg{Title: req.title, Line: scanner.Text(), ID: job.id}
		}
	}()

	wg.Wait()
	err = cmd.Wait()
	ch <- jobFinishedMsg{Title: req.title, Err: err, ID: job.id}
}

func waitForJobMsg(id int, ch <-chan jobMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return jobChannelClosedMsg{ID: id}
		}
		return msg
	}
}
